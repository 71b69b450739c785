// Package usecase holds the verification orchestration core: credential
// sign-in and sign-up, the OTP verification state machine, password reset,
// and the route guard over the session store.
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/scanme/authflow/internal/pkg/clock"
	"github.com/scanme/authflow/internal/pkg/config"
	"github.com/scanme/authflow/internal/pkg/goerror"
	"github.com/scanme/authflow/internal/pkg/goroutine"
	"github.com/scanme/authflow/internal/pkg/instrument"
	"github.com/scanme/authflow/internal/pkg/uid"
	"github.com/scanme/authflow/internal/pkg/validator"
	"github.com/scanme/authflow/internal/verification/entity"
	"github.com/scanme/authflow/internal/verification/outbound/state"
	"go.opentelemetry.io/otel/trace"
)

// authAPI is the remote auth service surface the flows depend on.
type authAPI interface {
	Login(ctx context.Context, email, password string) (entity.ServiceReply, error)
	Register(ctx context.Context, reg entity.Registration) (entity.ServiceReply, error)
	VerifyEmail(ctx context.Context, identifier, code string) (entity.ServiceReply, error)
	VerifyOTP(ctx context.Context, identifier, code string) (entity.ServiceReply, error)
	ResendOTP(ctx context.Context, identifier, tag string) (entity.ServiceReply, error)
	ForgotPassword(ctx context.Context, email string) (entity.ServiceReply, error)
	ResetPassword(ctx context.Context, token, newPassword, confirmNewPassword string) (entity.ServiceReply, error)
}

// Navigator receives the destination a finished flow decided on. The app
// layer implements it; flows never render anything themselves.
type Navigator interface {
	Navigate(route entity.Route, nav entity.NavState)
}

type Usecase struct {
	api       authAPI
	store     state.Store
	validator validator.Validator
	cfg       config.Config
	clock     clock.Clocker
	uid       uid.NumberID
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
}

type Dependency struct {
	API       authAPI
	Store     state.Store
	Validator validator.Validator
	Config    config.Config
	Clock     clock.Clocker
	UID       uid.NumberID
	Instrument instrument.Instrumentation
	Goroutine *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		api:       dep.API,
		store:     dep.Store,
		validator: dep.Validator,
		cfg:       dep.Config,
		clock:     dep.Clock,
		uid:       dep.UID,
		ins:       dep.Instrument,
		goroutine: dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("verification.usecase").Start(ctx, name)
}

// failure collapses an outbound call error into a user-facing FlowResult.
func failure(err error) entity.FlowResult {
	msg := msgUnexpectedError

	var ge *goerror.Error
	if errors.As(err, &ge) && ge.Msg() != "" {
		msg = ge.Msg()
	}

	return entity.FlowResult{Outcome: entity.OutcomeFailure, Message: msg}
}

func localFailure(msg string) entity.FlowResult {
	return entity.FlowResult{Outcome: entity.OutcomeFailure, Message: msg}
}

// destinationForRole picks the post-authentication landing route.
func destinationForRole(role string) entity.Route {
	if strings.EqualFold(role, entity.RoleClient) {
		return entity.RouteClientLanding
	}
	return entity.RouteDashboard
}
