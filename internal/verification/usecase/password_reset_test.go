package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/scanme/authflow/internal/verification/entity"
)

func TestResetPasswordMissingTokenRedirects(t *testing.T) {
	api := &fakeAPI{}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		NewPassword:        "Secret1@pass",
		ConfirmNewPassword: "Secret1@pass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if got.Outcome != entity.OutcomeFailure {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.Destination != entity.RouteForgotPassword {
		t.Fatalf("Destination = %q, want forgot-password restart", got.Destination)
	}
	if api.calls != 0 {
		t.Fatalf("network call made without a token")
	}
}

func TestResetPasswordStashFallback(t *testing.T) {
	var gotToken string
	api := &fakeAPI{
		resetFn: func(_ context.Context, token, _, _ string) (entity.ServiceReply, error) {
			gotToken = token
			return entity.ServiceReply{Status: http.StatusOK}, nil
		},
	}
	uc, store := newTestUsecase(t, api)
	ctx := context.Background()

	// token stashed earlier in the chain, as after a process restart
	store.StashVerificationToken(ctx, entity.PurposeResetPassword, "vt-stashed")

	got, err := uc.ResetPassword(ctx, ResetPasswordInput{
		NewPassword:        "Secret1@pass",
		ConfirmNewPassword: "Secret1@pass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if got.Outcome != entity.OutcomeSuccess {
		t.Fatalf("Outcome = %v, message %q", got.Outcome, got.Message)
	}
	if gotToken != "vt-stashed" {
		t.Fatalf("submitted token = %q, want stashed copy", gotToken)
	}

	// success consumes the stash
	left, _ := store.VerificationToken(ctx, entity.PurposeResetPassword)
	if left != "" {
		t.Fatalf("stash survived success: %q", left)
	}
}

func TestResetPasswordValidationOrder(t *testing.T) {
	cases := []struct {
		name    string
		input   ResetPasswordInput
		wantMsg string
	}{
		{
			name:    "EmptyFields",
			input:   ResetPasswordInput{Token: "vt", NewPassword: "", ConfirmNewPassword: ""},
			wantMsg: msgAllFieldsRequired,
		},
		{
			name:    "Mismatch",
			input:   ResetPasswordInput{Token: "vt", NewPassword: "Secret1@pass", ConfirmNewPassword: "Other1@pass"},
			wantMsg: msgPasswordsMismatch,
		},
		{
			// no uppercase, no symbol
			name:    "WeakPassword",
			input:   ResetPasswordInput{Token: "vt", NewPassword: "abc12345", ConfirmNewPassword: "abc12345"},
			wantMsg: msgWeakPassword,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			uc, _ := newTestUsecase(t, api)

			got, err := uc.ResetPassword(context.Background(), tc.input)
			if err != nil {
				t.Fatalf("ResetPassword() error = %v", err)
			}

			if got.Outcome != entity.OutcomeFailure || got.Message != tc.wantMsg {
				t.Fatalf("result = %+v, want message %q", got, tc.wantMsg)
			}
			if api.calls != 0 {
				t.Fatalf("network call made despite local validation failure")
			}
		})
	}
}

func TestResetPasswordServiceRejection(t *testing.T) {
	api := &fakeAPI{
		resetFn: func(_ context.Context, _, _, _ string) (entity.ServiceReply, error) {
			return entity.ServiceReply{Status: http.StatusBadRequest, Message: "Reset token expired"}, nil
		},
	}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Token:              "vt",
		NewPassword:        "Secret1@pass",
		ConfirmNewPassword: "Secret1@pass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if got.Outcome != entity.OutcomeFailure || got.Message != "Reset token expired" {
		t.Fatalf("result = %+v", got)
	}
}

func TestResetPasswordSuccessRedirectsToSignIn(t *testing.T) {
	api := &fakeAPI{}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.ResetPassword(context.Background(), ResetPasswordInput{
		Token:              "vt",
		NewPassword:        "Secret1@pass",
		ConfirmNewPassword: "Secret1@pass",
	})
	if err != nil {
		t.Fatalf("ResetPassword() error = %v", err)
	}

	if got.Outcome != entity.OutcomeSuccess {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.Destination != entity.RouteSignIn {
		t.Fatalf("Destination = %q", got.Destination)
	}
	if got.Message != msgPasswordWasReset {
		t.Fatalf("Message = %q", got.Message)
	}
}

func TestForgotPassword(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		api := &fakeAPI{
			forgotFn: func(_ context.Context, email string) (entity.ServiceReply, error) {
				return entity.ServiceReply{Status: http.StatusOK, VerificationToken: "vt-reset"}, nil
			},
		}
		uc, store := newTestUsecase(t, api)

		got, err := uc.ForgotPassword(context.Background(), "ada@mail.com")
		if err != nil {
			t.Fatalf("ForgotPassword() error = %v", err)
		}

		if got.Outcome != entity.OutcomeSuccess || got.NextPurpose != entity.PurposeResetPassword {
			t.Fatalf("result = %+v", got)
		}
		if got.Token != "vt-reset" || got.Destination != entity.RouteOTPVerification {
			t.Fatalf("result = %+v", got)
		}

		stashed, _ := store.VerificationToken(context.Background(), entity.PurposeResetPassword)
		if stashed != "vt-reset" {
			t.Fatalf("stashed token = %q", stashed)
		}
	})

	t.Run("EmptyEmail", func(t *testing.T) {
		api := &fakeAPI{}
		uc, _ := newTestUsecase(t, api)

		got, _ := uc.ForgotPassword(context.Background(), "   ")
		if got.Message != msgEnterEmail || api.calls != 0 {
			t.Fatalf("result = %+v, calls = %d", got, api.calls)
		}
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		api := &fakeAPI{}
		uc, _ := newTestUsecase(t, api)

		got, _ := uc.ForgotPassword(context.Background(), "not-an-email")
		if got.Message != msgInvalidEmail || api.calls != 0 {
			t.Fatalf("result = %+v, calls = %d", got, api.calls)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		api := &fakeAPI{
			forgotFn: func(_ context.Context, _ string) (entity.ServiceReply, error) {
				return entity.ServiceReply{Status: http.StatusNotFound}, nil
			},
		}
		uc, _ := newTestUsecase(t, api)

		got, _ := uc.ForgotPassword(context.Background(), "ghost@mail.com")
		if got.Outcome != entity.OutcomeFailure || got.Message != msgUserNotFound {
			t.Fatalf("result = %+v", got)
		}
	})
}
