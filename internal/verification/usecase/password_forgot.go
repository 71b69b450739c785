package usecase

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/scanme/authflow/internal/verification/entity"
)

// ForgotPassword starts a password reset. On acceptance the service issues a
// verification token; it is stashed so the reset flow can still find it if
// the process is restarted before the chain completes.
func (s *Usecase) ForgotPassword(ctx context.Context, email string) (entity.FlowResult, error) {
	ctx, span := s.startSpan(ctx, "ForgotPassword")
	defer span.End()

	email = strings.TrimSpace(email)
	if email == "" {
		return localFailure(msgEnterEmail), nil
	}

	if err := s.validator.Validate(struct {
		Email string `validate:"emailstrict"`
	}{Email: email}); err != nil {
		return localFailure(msgInvalidEmail), nil
	}

	reply, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		slog.WarnContext(ctx, "forgot password call failed", "error", err)
		return failure(err), nil
	}

	switch {
	case reply.Status == http.StatusAccepted && reply.VerificationToken != "":
		return entity.FlowResult{
			Outcome:     entity.OutcomeSecondFactorRequired,
			Message:     msgTwoFactorRequired,
			NextPurpose: entity.PurposeTwoFactor,
			Token:       reply.VerificationToken,
			Destination: entity.RouteOTPVerification,
		}, nil

	case reply.Error == serviceErrEmailUnverified:
		return entity.FlowResult{
			Outcome:     entity.OutcomeEmailUnverified,
			Message:     msgEmailUnverified,
			NextPurpose: entity.PurposeVerifyEmail,
			Token:       reply.VerificationToken,
			Destination: entity.RouteOTPVerification,
		}, nil

	case reply.Status == http.StatusNotFound:
		slog.WarnContext(ctx, "forgot password rejected, account not found")
		return localFailure(msgUserNotFound), nil

	case !reply.OK():
		slog.WarnContext(ctx, "forgot password failed", "status", reply.Status)
		return localFailure(msgUnexpectedError), nil
	}

	if err := s.store.StashVerificationToken(ctx, entity.PurposeResetPassword, reply.VerificationToken); err != nil {
		slog.ErrorContext(ctx, "failed to stash verification token", "error", err)
	}

	msg := reply.Message
	if msg == "" {
		msg = msgResetOtpSent
	}

	return entity.FlowResult{
		Outcome:     entity.OutcomeSuccess,
		Message:     msg,
		NextPurpose: entity.PurposeResetPassword,
		Token:       reply.VerificationToken,
		Destination: entity.RouteOTPVerification,
	}, nil
}
