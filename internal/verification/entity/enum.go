package entity

// Purpose is the reason a verification flow instance exists. It selects the
// remote submit endpoint, the user-facing copy, and the post-success
// destination. Exactly one Purpose governs a flow instance for its lifetime.
type Purpose int16

const (
	// PurposeUnknown means the purpose tag could not be recognized.
	PurposeUnknown Purpose = 0

	// PurposeVerifyEmail proves ownership of the registered email address.
	PurposeVerifyEmail Purpose = 1

	// PurposeTwoFactor completes the second authentication factor after a
	// successful credential check.
	PurposeTwoFactor Purpose = 2

	// PurposeResetPassword authorizes a password reset; on success the
	// verification token is forwarded to the reset flow.
	PurposeResetPassword Purpose = 3
)

// ParsePurpose maps an external purpose tag (navigation state, config, CLI)
// to a Purpose. Unrecognized tags map to PurposeUnknown; the resolver treats
// that as PurposeVerifyEmail, which is the chosen fallback policy.
func ParsePurpose(str string) Purpose {
	switch str {
	case "verify-email":
		return PurposeVerifyEmail
	case "2fa":
		return PurposeTwoFactor
	case "verify-reset-otp", "reset-password":
		return PurposeResetPassword
	default:
		return PurposeUnknown
	}
}

func (p Purpose) String() string {
	switch p {
	case PurposeVerifyEmail:
		return "verify-email"
	case PurposeTwoFactor:
		return "2fa"
	case PurposeResetPassword:
		return "verify-reset-otp"
	default:
		return "unknown"
	}
}

// ResendTag returns the context tag the remote resend endpoint expects.
// PurposeUnknown has no mapping and returns an empty string; callers must
// treat that as a local failure without a network call.
func (p Purpose) ResendTag() string {
	switch p {
	case PurposeVerifyEmail:
		return "EMAIL_VERIFICATION"
	case PurposeTwoFactor:
		return "2FA"
	case PurposeResetPassword:
		return "RESET_PASSWORD"
	default:
		return ""
	}
}

func (p Purpose) Ensure() Purpose {
	switch p {
	case PurposeVerifyEmail, PurposeTwoFactor, PurposeResetPassword:
		return p
	default:
		return PurposeUnknown
	}
}

// Outcome classifies what a completed flow operation means for the caller.
type Outcome int16

const (
	OutcomeUnknown Outcome = 0

	// OutcomeSuccess means the operation finished and the caller may proceed
	// to the result's destination.
	OutcomeSuccess Outcome = 1

	// OutcomeSecondFactorRequired means credentials were accepted but a 2FA
	// code must be verified before a session exists.
	OutcomeSecondFactorRequired Outcome = 2

	// OutcomeEmailUnverified means the account exists but its email address
	// has not been verified yet.
	OutcomeEmailUnverified Outcome = 3

	// OutcomeFailure means the operation failed and was surfaced to the user;
	// nothing was mutated.
	OutcomeFailure Outcome = 4
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeSecondFactorRequired:
		return "SecondFactorRequired"
	case OutcomeEmailUnverified:
		return "EmailUnverified"
	case OutcomeFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}
