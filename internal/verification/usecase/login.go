package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scanme/authflow/internal/verification/entity"
)

type LoginInput struct {
	Email    string
	Password string
}

// Login submits credentials and classifies the service's answer into a
// FlowResult. The session store is written only on full success; every
// other branch leaves it untouched.
func (s *Usecase) Login(ctx context.Context, in LoginInput) (entity.FlowResult, error) {
	ctx, span := s.startSpan(ctx, "Login")
	defer span.End()

	if in.Email == "" || in.Password == "" {
		return localFailure(msgFillAllFields), nil
	}

	reply, err := s.api.Login(ctx, strings.TrimSpace(in.Email), in.Password)
	if err != nil {
		slog.WarnContext(ctx, "login call failed", "error", err)
		return failure(err), nil
	}

	if reply.Status == http.StatusAccepted && reply.VerificationToken != "" {
		return entity.FlowResult{
			Outcome:     entity.OutcomeSecondFactorRequired,
			Message:     msgTwoFactorRequired,
			NextPurpose: entity.PurposeTwoFactor,
			Token:       reply.VerificationToken,
			Destination: entity.RouteOTPVerification,
		}, nil
	}

	if reply.OK() {
		session := entity.Session{Token: reply.Token, Role: reply.User.Role}
		if err := s.store.Establish(ctx, session); err != nil {
			slog.ErrorContext(ctx, "failed to establish session", "error", err)
			return entity.FlowResult{}, err
		}

		name := reply.User.FirstName
		if name == "" {
			name = "User"
		}

		return entity.FlowResult{
			Outcome:     entity.OutcomeSuccess,
			Message:     fmt.Sprintf("Welcome back, %s!", name),
			Role:        reply.User.Role,
			Destination: destinationForRole(reply.User.Role),
		}, nil
	}

	switch {
	case reply.Status == http.StatusNotFound:
		slog.WarnContext(ctx, "login rejected, account not found")
		return localFailure(msgUserNotFound), nil

	case reply.Status == http.StatusUnauthorized:
		slog.WarnContext(ctx, "login rejected, bad credentials")
		return localFailure(msgIncorrectCreds), nil

	case reply.Error == serviceErrEmailUnverified:
		return entity.FlowResult{
			Outcome:     entity.OutcomeEmailUnverified,
			Message:     msgEmailUnverified,
			NextPurpose: entity.PurposeVerifyEmail,
			Token:       reply.VerificationToken,
			Destination: entity.RouteOTPVerification,
		}, nil

	default:
		slog.WarnContext(ctx, "login failed with unexpected status", "status", reply.Status)
		return localFailure(msgUnexpectedError), nil
	}
}

// Logout clears the session store.
func (s *Usecase) Logout(ctx context.Context) error {
	ctx, span := s.startSpan(ctx, "Logout")
	defer span.End()

	return s.store.Clear(ctx)
}
