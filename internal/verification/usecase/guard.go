package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/samber/lo"
	"github.com/scanme/authflow/internal/pkg/jwtinspect"
	"github.com/scanme/authflow/internal/verification/entity"
)

// Authorize gates access to a role-restricted destination. Access is granted
// when a session token exists and, if allowed is non-empty, the stored role
// matches one of its entries case-insensitively. Denial redirects to
// sign-in. Expired persisted tokens are cleared instead of presented.
func (s *Usecase) Authorize(ctx context.Context, allowed ...string) (entity.Session, entity.Route, bool) {
	ctx, span := s.startSpan(ctx, "Authorize")
	defer span.End()

	session, err := s.store.Load(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load session", "error", err)
		return entity.Session{}, entity.RouteSignIn, false
	}

	if !session.Authenticated() {
		return entity.Session{}, entity.RouteSignIn, false
	}

	if jwtinspect.Expired(session.Token, s.clock.Now()) {
		slog.WarnContext(ctx, "stored session token expired, clearing")
		if err := s.store.Clear(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to clear expired session", "error", err)
		}
		return entity.Session{}, entity.RouteSignIn, false
	}

	if len(allowed) > 0 {
		match := lo.SomeBy(allowed, func(role string) bool {
			return strings.EqualFold(role, session.Role)
		})
		if !match {
			slog.WarnContext(ctx, "role not permitted for destination", "role", session.Role)
			return entity.Session{}, entity.RouteSignIn, false
		}
	}

	return session, destinationForRole(session.Role), true
}
