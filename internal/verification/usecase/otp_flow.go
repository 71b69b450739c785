package usecase

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/scanme/authflow/internal/pkg/goerror"
	"github.com/scanme/authflow/internal/verification/countdown"
	"github.com/scanme/authflow/internal/verification/entity"
	"go.uber.org/atomic"
)

// FlowState is the lifecycle state of an OTP verification flow instance.
type FlowState int32

const (
	// StateIdle accepts digit edits and a verify trigger.
	StateIdle FlowState = iota
	// StateSubmitting has a verify request in flight.
	StateSubmitting
	// StateVerifiedRedirecting showed the success message and will navigate
	// after the redirect delay.
	StateVerifiedRedirecting
	// StateFailed surfaced an error; the next digit edit returns to Idle.
	StateFailed
)

func (f FlowState) String() string {
	switch f {
	case StateSubmitting:
		return "Submitting"
	case StateVerifiedRedirecting:
		return "VerifiedRedirecting"
	case StateFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

const (
	defaultExpirySeconds   = 300
	defaultCooldownSeconds = 30
	defaultRedirectDelay   = 2 * time.Second
)

// OTPFlow is one verification attempt: a fixed-length code under edit, two
// countdowns, and a single in-flight request gate shared by verify and
// resend. Exactly one Purpose governs the instance for its lifetime.
type OTPFlow struct {
	id        uint64
	uc        *Usecase
	nav       entity.NavState
	resolved  ResolvedContext
	navigator Navigator

	expirySeconds   int
	cooldownSeconds int
	redirectDelay   time.Duration

	// loading gates verify and resend against each other; it is the only
	// concurrency control the flow needs since edits are UI-serialized.
	loading *atomic.Bool

	mu            sync.Mutex
	code          entity.OtpCode
	focus         int
	st            FlowState
	message       string
	expiry        *countdown.Countdown
	resendCD      *countdown.Countdown
	cancel        context.CancelFunc
	redirectTimer *time.Timer
}

// NewOTPFlow creates a flow instance for the purpose carried in nav. The
// countdowns hold their initial values but do not tick until Start.
func (s *Usecase) NewOTPFlow(nav entity.NavState, n Navigator) *OTPFlow {
	expiry := int(s.cfg.GetSecond("flows.otp.expiry_seconds").Seconds())
	if expiry <= 0 {
		expiry = defaultExpirySeconds
	}

	cooldown := int(s.cfg.GetSecond("flows.otp.resend_cooldown_seconds").Seconds())
	if cooldown <= 0 {
		cooldown = defaultCooldownSeconds
	}

	delay := time.Duration(s.cfg.GetInt64("flows.otp.redirect_delay_ms")) * time.Millisecond
	if delay <= 0 {
		delay = defaultRedirectDelay
	}

	return &OTPFlow{
		id:              s.uid.Generate(),
		uc:              s,
		nav:             nav,
		resolved:        s.Resolve(nav.Purpose),
		navigator:       n,
		expirySeconds:   expiry,
		cooldownSeconds: cooldown,
		redirectDelay:   delay,
		loading:         atomic.NewBool(false),
		expiry:          countdown.New(expiry),
		resendCD:        countdown.New(cooldown),
	}
}

// Start begins ticking both countdowns on managed goroutines. The flow owns
// their lifetime; Close tears them down.
func (f *OTPFlow) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	f.uc.goroutine.Go(ctx, func(ctx context.Context) error {
		f.expiry.Run(ctx)
		return nil
	})
	f.uc.goroutine.Go(ctx, func(ctx context.Context) error {
		f.resendCD.Run(ctx)
		return nil
	})
}

// Close cancels the countdowns and any pending redirect. Safe to call more
// than once.
func (f *OTPFlow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	f.expiry.Stop()
	f.resendCD.Stop()
	if f.redirectTimer != nil {
		f.redirectTimer.Stop()
		f.redirectTimer = nil
	}
}

// EditDigit writes a single digit (or clears with "") at the position.
// Accepting a non-empty digit advances focus. A flow in Failed returns to
// Idle on the first edit.
func (f *OTPFlow) EditDigit(pos int, value string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.st == StateSubmitting || f.st == StateVerifiedRedirecting {
		return false
	}

	if !f.code.SetDigit(pos, value) {
		return false
	}

	if f.st == StateFailed {
		f.st = StateIdle
		f.message = ""
	}

	if value != "" && pos+1 < entity.OtpLength {
		f.focus = pos + 1
	}
	return true
}

// EditBackspace moves focus back one position when the current one is empty.
// It never deletes the previous digit itself.
func (f *OTPFlow) EditBackspace(pos int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.code.Digit(pos) == "" && pos > 0 {
		f.focus = pos - 1
	}
}

// Verify submits the code against the resolved purpose. On success the flow
// shows the context's success message and navigates after the redirect
// delay, forwarding the verification token when the destination needs it.
func (f *OTPFlow) Verify(ctx context.Context) entity.FlowResult {
	if !f.loading.CompareAndSwap(false, true) {
		return localFailure(msgOperationInFlight)
	}
	defer f.loading.Store(false)

	f.mu.Lock()
	if !f.code.Complete() {
		f.mu.Unlock()
		return localFailure(msgFillAllOtpFields)
	}
	if f.nav.Token == "" {
		f.mu.Unlock()
		slog.WarnContext(ctx, "verify without verification token", "flow_id", f.id, "purpose", f.resolved.Purpose.String())
		return localFailure(msgMissingVerifyToken)
	}

	code := f.code.String()
	f.st = StateSubmitting
	f.mu.Unlock()

	reply, err := f.resolved.Submit(ctx, f.nav.Token, code)
	if err != nil {
		slog.WarnContext(ctx, "verify call failed", "flow_id", f.id, "error", err)
		return f.fail(failure(err).Message)
	}
	if !reply.OK() {
		slog.WarnContext(ctx, "code rejected", "flow_id", f.id, "status", reply.Status)
		msg := reply.Error
		if msg == "" {
			msg = msgInvalidOtp
		}
		return f.fail(msg)
	}

	role := f.nav.Role
	if reply.User.Role != "" {
		role = reply.User.Role
	}
	dest := f.resolved.Destination(role)

	next := entity.NavState{Email: f.nav.Email, Purpose: f.resolved.Purpose, Role: role}
	if f.resolved.ForwardToken {
		next.Token = f.nav.Token
		if err := f.uc.store.StashVerificationToken(ctx, f.resolved.Purpose, f.nav.Token); err != nil {
			slog.ErrorContext(ctx, "failed to stash verification token", "flow_id", f.id, "error", err)
		}
	}

	if f.resolved.Purpose == entity.PurposeTwoFactor && reply.Token != "" {
		session := entity.Session{Token: reply.Token, Role: role}
		if err := f.uc.store.Establish(ctx, session); err != nil {
			slog.ErrorContext(ctx, "failed to establish session", "flow_id", f.id, "error", err)
		}
	}

	f.mu.Lock()
	f.st = StateVerifiedRedirecting
	f.message = f.resolved.SuccessMessage
	f.redirectTimer = time.AfterFunc(f.redirectDelay, func() {
		f.navigator.Navigate(dest, next)
	})
	f.mu.Unlock()

	return entity.FlowResult{
		Outcome:     entity.OutcomeSuccess,
		Message:     f.resolved.SuccessMessage,
		NextPurpose: f.resolved.Purpose,
		Token:       next.Token,
		Role:        role,
		Destination: dest,
	}
}

// Resend asks the service for a fresh code. Only a successful resend resets
// the countdowns.
func (f *OTPFlow) Resend(ctx context.Context) entity.FlowResult {
	if !f.loading.CompareAndSwap(false, true) {
		return localFailure(msgOperationInFlight)
	}
	defer f.loading.Store(false)

	if !f.resendCD.Expired() {
		return localFailure(msgResendCooldown)
	}

	tag := f.nav.Purpose.ResendTag()
	if tag == "" {
		slog.WarnContext(ctx, "resend with unmapped purpose", "flow_id", f.id, "purpose", f.nav.Purpose.String())
		return failure(goerror.NewUnmapped(f.nav.Purpose.String()))
	}

	if f.nav.Token == "" {
		return localFailure(msgMissingVerifyToken)
	}

	reply, err := f.uc.api.ResendOTP(ctx, f.nav.Token, tag)
	if err != nil {
		slog.WarnContext(ctx, "resend call failed", "flow_id", f.id, "error", err)
		return failure(err)
	}
	if !reply.OK() {
		slog.WarnContext(ctx, "resend rejected", "flow_id", f.id, "status", reply.Status)
		msg := reply.Error
		if msg == "" {
			msg = msgResendFailed
		}
		return localFailure(msg)
	}

	f.expiry.Reset(f.expirySeconds)
	f.resendCD.Reset(f.cooldownSeconds)

	return entity.FlowResult{Outcome: entity.OutcomeSuccess, Message: msgOtpResent}
}

// State returns the current lifecycle state.
func (f *OTPFlow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.st
}

// Message returns the last surfaced message, success or failure.
func (f *OTPFlow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.message
}

// Focus returns the position the next digit edit should target.
func (f *OTPFlow) Focus() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.focus
}

// Digit returns the value at the given code position.
func (f *OTPFlow) Digit(pos int) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.code.Digit(pos)
}

// CanVerify reports whether the verify control should be enabled.
func (f *OTPFlow) CanVerify() bool {
	f.mu.Lock()
	complete := f.code.Complete()
	f.mu.Unlock()

	return complete && !f.loading.Load()
}

// CanResend reports whether the resend control should be enabled.
func (f *OTPFlow) CanResend() bool {
	return f.resendCD.Expired() && !f.loading.Load()
}

// ExpiryRemaining returns the advisory seconds left before the code expires.
func (f *OTPFlow) ExpiryRemaining() int {
	return f.expiry.Remaining()
}

// ResendRemaining returns the seconds left on the resend cooldown.
func (f *OTPFlow) ResendRemaining() int {
	return f.resendCD.Remaining()
}

// Title returns the heading for the resolved purpose.
func (f *OTPFlow) Title() string {
	return f.resolved.Title
}

// Description returns the instruction line for the resolved purpose.
func (f *OTPFlow) Description() string {
	return f.resolved.Description
}

func (f *OTPFlow) fail(msg string) entity.FlowResult {
	f.mu.Lock()
	f.st = StateFailed
	f.message = msg
	f.mu.Unlock()

	return localFailure(msg)
}
