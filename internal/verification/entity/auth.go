package entity

// Route is a destination inside the client application.
type Route string

const (
	RouteSignIn          Route = "/auth/sign-in"
	RouteSignUp          Route = "/auth/sign-up"
	RouteForgotPassword  Route = "/auth/forgot-password"
	RouteOTPVerification Route = "/auth/otp-verification"
	RouteResetPassword   Route = "/auth/reset-password"
	RouteClientLanding   Route = "/client/scan-me"
	RouteDashboard       Route = "/dashboard/home"
)

// RoleClient is the only role routed to the client landing page after
// authentication; every other role goes to the operator dashboard.
const RoleClient = "client"

// Session holds the authenticated token and role for the process lifetime.
// Both fields are written together by Store.Establish; a token without a
// role (or the reverse) is an invalid state.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// FlowResult is the normalized shape every flow operation collapses into
// before the caller acts on it.
type FlowResult struct {
	Outcome     Outcome
	Message     string
	NextPurpose Purpose
	Token       string // verification token to carry forward, if any
	Role        string
	Destination Route
}

// NavState is the state carried across a navigation, mirroring what the
// flows hand to each other: who is verifying, why, and with which token.
type NavState struct {
	Email   string
	Purpose Purpose
	Token   string
	Role    string
}

// ServiceReply is the decoded response of a remote auth service call.
// Status is the HTTP status code; the remaining fields are whichever parts
// of the body the service chose to send.
type ServiceReply struct {
	Status            int
	Message           string
	Error             string
	Token             string
	VerificationToken string
	User              ServiceUser
}

// OK reports whether the reply carries a 2xx status.
func (r ServiceReply) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// ServiceUser is the user object embedded in a successful login reply.
type ServiceUser struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Role      string
}

// Registration is the payload of a sign-up submission.
type Registration struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}
