package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/scanme/authflow/internal/pkg/validator"
	"github.com/scanme/authflow/internal/verification/entity"
)

// registerFormat carries only the format rules; presence is checked first so
// a missing field short-circuits with its own message before any format rule
// runs.
type registerFormat struct {
	Email           string `validate:"omitempty,emailstrict"`
	Phone           string `validate:"omitempty,phone"`
	Password        string `validate:"omitempty,password"`
	ConfirmPassword string `validate:"omitempty,eqfield=Password"`
}

// registerFieldOrder fixes which format failure is surfaced when several
// fields are invalid at once.
var registerFieldOrder = []struct {
	field string
	msg   string
}{
	{"email", msgInvalidEmail},
	{"phone", msgInvalidPhone},
	{"password", msgWeakPassword},
	{"confirm_password", msgPasswordsMismatch},
}

// Register validates a sign-up locally and submits it. A passing submission
// leads into email verification with the returned verification token.
func (s *Usecase) Register(ctx context.Context, reg entity.Registration) (entity.FlowResult, error) {
	ctx, span := s.startSpan(ctx, "Register")
	defer span.End()

	if reg.FirstName == "" || reg.LastName == "" || reg.Email == "" ||
		reg.Phone == "" || reg.Password == "" || reg.ConfirmPassword == "" {
		return localFailure(msgAllFieldsRequired), nil
	}

	if msg := s.checkRegisterFormat(reg); msg != "" {
		return localFailure(msg), nil
	}

	reply, err := s.api.Register(ctx, reg)
	if err != nil {
		slog.WarnContext(ctx, "register call failed", "error", err)
		return failure(err), nil
	}

	if !reply.OK() {
		slog.WarnContext(ctx, "registration rejected", "status", reply.Status)
		msg := reply.Error
		if msg == "" {
			msg = msgRegisterError
		}
		return localFailure(msg), nil
	}

	msg := reply.Message
	if msg == "" {
		msg = msgRegistered
	}

	return entity.FlowResult{
		Outcome:     entity.OutcomeSuccess,
		Message:     msg,
		NextPurpose: entity.PurposeVerifyEmail,
		Token:       reply.VerificationToken,
		Destination: entity.RouteOTPVerification,
	}, nil
}

func (s *Usecase) checkRegisterFormat(reg entity.Registration) string {
	err := s.validator.Validate(registerFormat{
		Email:           reg.Email,
		Phone:           reg.Phone,
		Password:        reg.Password,
		ConfirmPassword: reg.ConfirmPassword,
	})
	if err == nil {
		return ""
	}

	var fields validator.V10ValidationError
	if !errors.As(err, &fields) {
		return msgAllFieldsRequired
	}

	for _, fo := range registerFieldOrder {
		if _, bad := fields[fo.field]; bad {
			return fo.msg
		}
	}

	return msgAllFieldsRequired
}
