package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/scanme/authflow/internal/verification/entity"
)

func validRegistration() entity.Registration {
	return entity.Registration{
		FirstName:       "Ada",
		LastName:        "Lovelace",
		Email:           "ada@mail.com",
		Phone:           "0612345678",
		Password:        "Secret1@pass",
		ConfirmPassword: "Secret1@pass",
	}
}

func TestRegisterLocalValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*entity.Registration)
		wantMsg string
	}{
		{
			name:    "MissingField",
			mutate:  func(r *entity.Registration) { r.Phone = "" },
			wantMsg: msgAllFieldsRequired,
		},
		{
			name:    "BadEmailDomain",
			mutate:  func(r *entity.Registration) { r.Email = "ada@mail.org" },
			wantMsg: msgInvalidEmail,
		},
		{
			name:    "BadPhonePrefix",
			mutate:  func(r *entity.Registration) { r.Phone = "0812345678" },
			wantMsg: msgInvalidPhone,
		},
		{
			name: "WeakPassword",
			mutate: func(r *entity.Registration) {
				r.Password = "abc12345"
				r.ConfirmPassword = "abc12345"
			},
			wantMsg: msgWeakPassword,
		},
		{
			name:    "PasswordMismatch",
			mutate:  func(r *entity.Registration) { r.ConfirmPassword = "Other1@pass" },
			wantMsg: msgPasswordsMismatch,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{}
			uc, _ := newTestUsecase(t, api)

			reg := validRegistration()
			tc.mutate(&reg)

			got, err := uc.Register(context.Background(), reg)
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			if got.Outcome != entity.OutcomeFailure {
				t.Fatalf("Outcome = %v", got.Outcome)
			}
			if got.Message != tc.wantMsg {
				t.Fatalf("Message = %q, want %q", got.Message, tc.wantMsg)
			}
			if api.calls != 0 {
				t.Fatalf("network call made despite local validation failure")
			}
		})
	}
}

func TestRegisterSuccess(t *testing.T) {
	api := &fakeAPI{
		registerFn: func(_ context.Context, reg entity.Registration) (entity.ServiceReply, error) {
			if reg.Email != "ada@mail.com" {
				t.Errorf("registration email = %q", reg.Email)
			}
			return entity.ServiceReply{Status: http.StatusCreated, VerificationToken: "vt-new"}, nil
		},
	}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if got.Outcome != entity.OutcomeSuccess {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.NextPurpose != entity.PurposeVerifyEmail || got.Token != "vt-new" {
		t.Fatalf("result = %+v", got)
	}
	if got.Destination != entity.RouteOTPVerification {
		t.Fatalf("Destination = %q", got.Destination)
	}
	if got.Message != msgRegistered {
		t.Fatalf("Message = %q", got.Message)
	}
}

func TestRegisterServiceRejection(t *testing.T) {
	api := &fakeAPI{
		registerFn: func(_ context.Context, _ entity.Registration) (entity.ServiceReply, error) {
			return entity.ServiceReply{Status: http.StatusConflict, Error: "Email already registered"}, nil
		},
	}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.Register(context.Background(), validRegistration())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if got.Outcome != entity.OutcomeFailure || got.Message != "Email already registered" {
		t.Fatalf("result = %+v", got)
	}
}
