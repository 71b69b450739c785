package usecase

import (
	"context"
	"net/http"
	"testing"

	"github.com/scanme/authflow/internal/pkg/clock"
	"github.com/scanme/authflow/internal/pkg/config"
	"github.com/scanme/authflow/internal/pkg/goroutine"
	"github.com/scanme/authflow/internal/pkg/instrument"
	"github.com/scanme/authflow/internal/pkg/validator"
	"github.com/scanme/authflow/internal/verification/entity"
	"github.com/scanme/authflow/internal/verification/outbound/state"
)

const testConfigYAML = `
flows:
  otp:
    expiry_seconds: 300
    resend_cooldown_seconds: 30
    redirect_delay_ms: 10
`

// fakeAPI lets each test script the remote service per endpoint. Unset
// endpoints answer 200 with an empty body.
type fakeAPI struct {
	loginFn    func(ctx context.Context, email, password string) (entity.ServiceReply, error)
	registerFn func(ctx context.Context, reg entity.Registration) (entity.ServiceReply, error)
	verifyEmFn func(ctx context.Context, identifier, code string) (entity.ServiceReply, error)
	verifyFn   func(ctx context.Context, identifier, code string) (entity.ServiceReply, error)
	resendFn   func(ctx context.Context, identifier, tag string) (entity.ServiceReply, error)
	forgotFn   func(ctx context.Context, email string) (entity.ServiceReply, error)
	resetFn    func(ctx context.Context, token, newPassword, confirmNewPassword string) (entity.ServiceReply, error)

	calls int
}

func okReply() (entity.ServiceReply, error) {
	return entity.ServiceReply{Status: http.StatusOK}, nil
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (entity.ServiceReply, error) {
	f.calls++
	if f.loginFn != nil {
		return f.loginFn(ctx, email, password)
	}
	return okReply()
}

func (f *fakeAPI) Register(ctx context.Context, reg entity.Registration) (entity.ServiceReply, error) {
	f.calls++
	if f.registerFn != nil {
		return f.registerFn(ctx, reg)
	}
	return okReply()
}

func (f *fakeAPI) VerifyEmail(ctx context.Context, identifier, code string) (entity.ServiceReply, error) {
	f.calls++
	if f.verifyEmFn != nil {
		return f.verifyEmFn(ctx, identifier, code)
	}
	return okReply()
}

func (f *fakeAPI) VerifyOTP(ctx context.Context, identifier, code string) (entity.ServiceReply, error) {
	f.calls++
	if f.verifyFn != nil {
		return f.verifyFn(ctx, identifier, code)
	}
	return okReply()
}

func (f *fakeAPI) ResendOTP(ctx context.Context, identifier, tag string) (entity.ServiceReply, error) {
	f.calls++
	if f.resendFn != nil {
		return f.resendFn(ctx, identifier, tag)
	}
	return okReply()
}

func (f *fakeAPI) ForgotPassword(ctx context.Context, email string) (entity.ServiceReply, error) {
	f.calls++
	if f.forgotFn != nil {
		return f.forgotFn(ctx, email)
	}
	return okReply()
}

func (f *fakeAPI) ResetPassword(ctx context.Context, token, newPassword, confirmNewPassword string) (entity.ServiceReply, error) {
	f.calls++
	if f.resetFn != nil {
		return f.resetFn(ctx, token, newPassword, confirmNewPassword)
	}
	return okReply()
}

// recordingNavigator captures navigations on a channel so tests can wait for
// the redirect delay to elapse.
type recordingNavigator struct {
	ch chan navigation
}

type navigation struct {
	route entity.Route
	nav   entity.NavState
}

func newRecordingNavigator() *recordingNavigator {
	return &recordingNavigator{ch: make(chan navigation, 1)}
}

func (r *recordingNavigator) Navigate(route entity.Route, nav entity.NavState) {
	r.ch <- navigation{route: route, nav: nav}
}

type seqNumberID struct{ n uint64 }

func (s *seqNumberID) Generate() uint64 {
	s.n++
	return s.n
}

func newTestUsecase(t *testing.T, api authAPI) (*Usecase, *state.Memory) {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfigYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	store := state.NewMemory()

	uc := New(Dependency{
		API:        api,
		Store:      store,
		Validator:  v10,
		Config:     cfg,
		Clock:      clock.New(),
		UID:        &seqNumberID{},
		Instrument: instrument.NewNoop(),
		Goroutine:  goroutine.NewManager(10),
	})

	return uc, store
}
