package usecase

import (
	"context"
	"log/slog"

	"github.com/scanme/authflow/internal/verification/entity"
)

type ResetPasswordInput struct {
	// Token is the verification token forwarded from the OTP flow. When
	// empty, the stashed copy from the store is used as a fallback so the
	// flow survives a process restart.
	Token              string
	NewPassword        string
	ConfirmNewPassword string
}

// ResetPassword submits a new credential against a verified reset attempt.
// Validation short-circuits on the first failure: presence, match, then
// complexity. A missing token is fatal and redirects back to the start of
// the forgot-password chain.
func (s *Usecase) ResetPassword(ctx context.Context, in ResetPasswordInput) (entity.FlowResult, error) {
	ctx, span := s.startSpan(ctx, "ResetPassword")
	defer span.End()

	token := in.Token
	if token == "" {
		stashed, err := s.store.VerificationToken(ctx, entity.PurposeResetPassword)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read stashed verification token", "error", err)
		}
		token = stashed
	}

	if token == "" {
		return entity.FlowResult{
			Outcome:     entity.OutcomeFailure,
			Message:     msgResetSessionLost,
			Destination: entity.RouteForgotPassword,
		}, nil
	}

	if in.NewPassword == "" || in.ConfirmNewPassword == "" {
		return localFailure(msgAllFieldsRequired), nil
	}

	if in.NewPassword != in.ConfirmNewPassword {
		return localFailure(msgPasswordsMismatch), nil
	}

	if err := s.validator.Validate(struct {
		NewPassword string `validate:"password"`
	}{NewPassword: in.NewPassword}); err != nil {
		return localFailure(msgWeakPassword), nil
	}

	reply, err := s.api.ResetPassword(ctx, token, in.NewPassword, in.ConfirmNewPassword)
	if err != nil {
		slog.WarnContext(ctx, "reset password call failed", "error", err)
		return failure(err), nil
	}

	if !reply.OK() {
		slog.WarnContext(ctx, "reset password rejected", "status", reply.Status)
		msg := reply.Message
		if msg == "" {
			msg = reply.Error
		}
		if msg == "" {
			msg = msgUnexpectedError
		}
		return localFailure(msg), nil
	}

	if err := s.store.ClearVerificationToken(ctx, entity.PurposeResetPassword); err != nil {
		slog.ErrorContext(ctx, "failed to clear stashed verification token", "error", err)
	}

	msg := reply.Message
	if msg == "" {
		msg = msgPasswordWasReset
	}

	return entity.FlowResult{
		Outcome:     entity.OutcomeSuccess,
		Message:     msg,
		Destination: entity.RouteSignIn,
	}, nil
}
