package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/scanme/authflow/internal/app"
)

func main() {
	application := app.New() // Initialize the application

	err := application.Run() // Drive the console until the user quits

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	application.Stop(ctx) // Stop the application gracefully

	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("application exited with error", "error", err)
		os.Exit(1)
	}
}
