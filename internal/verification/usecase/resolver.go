package usecase

import (
	"context"

	"github.com/scanme/authflow/internal/verification/entity"
)

// ResolvedContext is everything an OTP verification flow needs for one
// purpose: the copy to show, the submit call, and where to go on success.
type ResolvedContext struct {
	Purpose        entity.Purpose
	Title          string
	Description    string
	SuccessMessage string

	// Submit verifies the code against the purpose's endpoint. The
	// identifier is the verification token in effect.
	Submit func(ctx context.Context, identifier, code string) (entity.ServiceReply, error)

	// Destination maps the authenticated role to the post-success route.
	// Most purposes ignore the role.
	Destination func(role string) entity.Route

	// ForwardToken marks purposes whose destination needs the verification
	// token carried along as navigation state.
	ForwardToken bool
}

// Resolve maps a Purpose to its verification context. It is total: an
// unknown purpose resolves to the email-verification context rather than
// failing, which keeps a flow reachable even with a mangled tag. Resend tag
// mapping is the one place that still distinguishes unknown, since the
// remote service rejects tags it does not know.
func (s *Usecase) Resolve(p entity.Purpose) ResolvedContext {
	switch p.Ensure() {
	case entity.PurposeTwoFactor:
		return ResolvedContext{
			Purpose:        entity.PurposeTwoFactor,
			Title:          "Enter Your OTP Code",
			Description:    "Enter the 4-digit code sent to your email to complete 2FA.",
			SuccessMessage: "2FA completed successfully! Redirecting...",
			Submit:         s.api.VerifyOTP,
			Destination:    destinationForRole,
		}

	case entity.PurposeResetPassword:
		return ResolvedContext{
			Purpose:        entity.PurposeResetPassword,
			Title:          "Verify Your Reset Code",
			Description:    "Enter the 4-digit code sent to your email to reset your password.",
			SuccessMessage: "OTP verified successfully! Proceeding to reset password...",
			Submit:         s.api.VerifyOTP,
			Destination:    staticRoute(entity.RouteResetPassword),
			ForwardToken:   true,
		}

	default:
		return ResolvedContext{
			Purpose:        entity.PurposeVerifyEmail,
			Title:          "Verify Your Email Address",
			Description:    "Enter the 4-digit code sent to your email to verify your account.",
			SuccessMessage: "Your email has been successfully verified!",
			Submit:         s.api.VerifyEmail,
			Destination:    staticRoute(entity.RouteSignIn),
		}
	}
}

func staticRoute(r entity.Route) func(string) entity.Route {
	return func(string) entity.Route { return r }
}
