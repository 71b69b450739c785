package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/scanme/authflow/internal/pkg/goerror"
	"github.com/scanme/authflow/internal/verification/entity"
)

func TestLoginAdminRole(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_ context.Context, email, password string) (entity.ServiceReply, error) {
			return entity.ServiceReply{
				Status: http.StatusOK,
				Token:  "jwt-admin",
				User:   entity.ServiceUser{FirstName: "Ada", Role: "admin"},
			}, nil
		},
	}
	uc, store := newTestUsecase(t, api)

	got, err := uc.Login(context.Background(), LoginInput{Email: "ada@mail.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got.Outcome != entity.OutcomeSuccess {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.Destination != entity.RouteDashboard {
		t.Fatalf("Destination = %q, want operator dashboard", got.Destination)
	}
	if got.Message != "Welcome back, Ada!" {
		t.Fatalf("Message = %q", got.Message)
	}

	session, _ := store.Load(context.Background())
	if session.Token != "jwt-admin" || session.Role != "admin" {
		t.Fatalf("session = %+v", session)
	}
}

func TestLoginClientRole(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (entity.ServiceReply, error) {
			return entity.ServiceReply{
				Status: http.StatusOK,
				Token:  "jwt-client",
				User:   entity.ServiceUser{Role: "client"},
			}, nil
		},
	}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.Login(context.Background(), LoginInput{Email: "c@mail.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got.Destination != entity.RouteClientLanding {
		t.Fatalf("Destination = %q, want client landing", got.Destination)
	}
	if got.Message != "Welcome back, User!" {
		t.Fatalf("Message = %q", got.Message)
	}
}

func TestLoginSecondFactorRequired(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (entity.ServiceReply, error) {
			return entity.ServiceReply{Status: http.StatusAccepted, VerificationToken: "vt-2fa"}, nil
		},
	}
	uc, store := newTestUsecase(t, api)

	got, err := uc.Login(context.Background(), LoginInput{Email: "u@mail.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got.Outcome != entity.OutcomeSecondFactorRequired {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.NextPurpose != entity.PurposeTwoFactor || got.Token != "vt-2fa" {
		t.Fatalf("result = %+v", got)
	}
	if got.Destination != entity.RouteOTPVerification {
		t.Fatalf("Destination = %q", got.Destination)
	}

	session, _ := store.Load(context.Background())
	if session.Authenticated() {
		t.Fatalf("session written before second factor: %+v", session)
	}
}

func TestLoginEmailUnverified(t *testing.T) {
	api := &fakeAPI{
		loginFn: func(_ context.Context, _, _ string) (entity.ServiceReply, error) {
			return entity.ServiceReply{
				Status:            http.StatusForbidden,
				Error:             "Email is not verified",
				VerificationToken: "vt-verify",
			}, nil
		},
	}
	uc, store := newTestUsecase(t, api)

	got, err := uc.Login(context.Background(), LoginInput{Email: "u@mail.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got.Outcome != entity.OutcomeEmailUnverified {
		t.Fatalf("Outcome = %v", got.Outcome)
	}
	if got.NextPurpose != entity.PurposeVerifyEmail || got.Token != "vt-verify" {
		t.Fatalf("result = %+v", got)
	}

	session, _ := store.Load(context.Background())
	if session.Authenticated() {
		t.Fatalf("session written on unverified email: %+v", session)
	}
}

func TestLoginRejections(t *testing.T) {
	cases := []struct {
		name    string
		reply   entity.ServiceReply
		callErr error
		wantMsg string
	}{
		{
			name:    "NotFound",
			reply:   entity.ServiceReply{Status: http.StatusNotFound},
			wantMsg: msgUserNotFound,
		},
		{
			name:    "BadCredentials",
			reply:   entity.ServiceReply{Status: http.StatusUnauthorized},
			wantMsg: msgIncorrectCreds,
		},
		{
			name:    "ServerError",
			reply:   entity.ServiceReply{Status: http.StatusInternalServerError},
			wantMsg: msgUnexpectedError,
		},
		{
			name:    "NetworkDown",
			callErr: goerror.NewNetwork(errors.New("dial tcp: connection refused")),
			wantMsg: msgNetworkError,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			api := &fakeAPI{
				loginFn: func(_ context.Context, _, _ string) (entity.ServiceReply, error) {
					return tc.reply, tc.callErr
				},
			}
			uc, store := newTestUsecase(t, api)

			got, err := uc.Login(context.Background(), LoginInput{Email: "u@mail.com", Password: "pw"})
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}

			if got.Outcome != entity.OutcomeFailure {
				t.Fatalf("Outcome = %v", got.Outcome)
			}
			if got.Message != tc.wantMsg {
				t.Fatalf("Message = %q, want %q", got.Message, tc.wantMsg)
			}

			session, _ := store.Load(context.Background())
			if session.Authenticated() {
				t.Fatalf("session written on failure: %+v", session)
			}
		})
	}
}

func TestLoginEmptyFieldsNoCall(t *testing.T) {
	api := &fakeAPI{}
	uc, _ := newTestUsecase(t, api)

	got, err := uc.Login(context.Background(), LoginInput{Email: "u@mail.com"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	if got.Outcome != entity.OutcomeFailure || got.Message != msgFillAllFields {
		t.Fatalf("result = %+v", got)
	}
	if api.calls != 0 {
		t.Fatalf("network call made despite empty field")
	}
}

func TestLogout(t *testing.T) {
	uc, store := newTestUsecase(t, &fakeAPI{})
	ctx := context.Background()

	store.Establish(ctx, entity.Session{Token: "jwt", Role: "admin"})
	if err := uc.Logout(ctx); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	session, _ := store.Load(ctx)
	if session.Authenticated() {
		t.Fatalf("session survived logout: %+v", session)
	}
}
