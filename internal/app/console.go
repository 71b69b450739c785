package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/scanme/authflow/internal/verification/countdown"
	"github.com/scanme/authflow/internal/verification/entity"
	"github.com/scanme/authflow/internal/verification/usecase"
)

// Console is a line-oriented front end over the verification flows. It is
// the Navigator the flows redirect through; a redirect decided by a flow
// lands on navCh and the run loop picks it up.
type Console struct {
	uc  *usecase.Usecase
	in  *bufio.Scanner
	out io.Writer

	navCh chan consoleNav
}

type consoleNav struct {
	route entity.Route
	nav   entity.NavState
}

// NewConsole creates a console reading commands from in and writing to out.
func NewConsole(uc *usecase.Usecase, in io.Reader, out io.Writer) *Console {
	return &Console{
		uc:    uc,
		in:    bufio.NewScanner(in),
		out:   out,
		navCh: make(chan consoleNav, 1),
	}
}

// Navigate implements usecase.Navigator. It may be called from a flow's
// redirect timer, so it only queues; the run loop does the switching.
func (c *Console) Navigate(route entity.Route, nav entity.NavState) {
	select {
	case c.navCh <- consoleNav{route: route, nav: nav}:
	default:
	}
}

// Run drives screens until the user quits or ctx is canceled.
func (c *Console) Run(ctx context.Context) error {
	current := consoleNav{route: entity.RouteSignIn}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var (
			next consoleNav
			quit bool
		)

		switch current.route {
		case entity.RouteSignUp:
			next = c.signUpScreen(ctx)
		case entity.RouteForgotPassword:
			next = c.forgotPasswordScreen(ctx)
		case entity.RouteOTPVerification:
			next = c.otpScreen(ctx, current.nav)
		case entity.RouteResetPassword:
			next = c.resetPasswordScreen(ctx, current.nav)
		case entity.RouteDashboard, entity.RouteClientLanding:
			next, quit = c.landingScreen(ctx, current.route)
		default:
			next, quit = c.signInScreen(ctx)
		}

		if quit {
			return nil
		}
		current = next
	}
}

func (c *Console) signInScreen(ctx context.Context) (consoleNav, bool) {
	c.printf("\n== Sign In ==\n")
	c.printf("(enter to submit, 'u' sign up, 'f' forgot password, 'q' quit)\n")

	email := c.prompt("Email: ")
	switch email {
	case "q":
		return consoleNav{}, true
	case "u":
		return consoleNav{route: entity.RouteSignUp}, false
	case "f":
		return consoleNav{route: entity.RouteForgotPassword}, false
	}
	password := c.prompt("Password: ")

	result, err := c.uc.Login(ctx, usecase.LoginInput{Email: email, Password: password})
	if err != nil {
		c.printf("error: %v\n", err)
		return consoleNav{route: entity.RouteSignIn}, false
	}

	c.printf("%s\n", result.Message)

	switch result.Outcome {
	case entity.OutcomeSuccess:
		return consoleNav{route: result.Destination}, false
	case entity.OutcomeSecondFactorRequired, entity.OutcomeEmailUnverified:
		return consoleNav{
			route: result.Destination,
			nav: entity.NavState{
				Email:   email,
				Purpose: result.NextPurpose,
				Token:   result.Token,
			},
		}, false
	default:
		return consoleNav{route: entity.RouteSignIn}, false
	}
}

func (c *Console) signUpScreen(ctx context.Context) consoleNav {
	c.printf("\n== Sign Up ==\n")

	reg := entity.Registration{
		FirstName:       c.prompt("First name: "),
		LastName:        c.prompt("Last name: "),
		Email:           c.prompt("Email: "),
		Phone:           c.prompt("Phone: "),
		Password:        c.prompt("Password: "),
		ConfirmPassword: c.prompt("Confirm password: "),
	}

	result, err := c.uc.Register(ctx, reg)
	if err != nil {
		c.printf("error: %v\n", err)
		return consoleNav{route: entity.RouteSignUp}
	}

	c.printf("%s\n", result.Message)

	if result.Outcome != entity.OutcomeSuccess {
		return consoleNav{route: entity.RouteSignUp}
	}

	return consoleNav{
		route: result.Destination,
		nav: entity.NavState{
			Email:   reg.Email,
			Purpose: result.NextPurpose,
			Token:   result.Token,
		},
	}
}

func (c *Console) forgotPasswordScreen(ctx context.Context) consoleNav {
	c.printf("\n== Forgot Password ==\n")

	email := c.prompt("Email: ")

	result, err := c.uc.ForgotPassword(ctx, email)
	if err != nil {
		c.printf("error: %v\n", err)
		return consoleNav{route: entity.RouteSignIn}
	}

	c.printf("%s\n", result.Message)

	if result.Outcome == entity.OutcomeFailure {
		return consoleNav{route: entity.RouteSignIn}
	}

	return consoleNav{
		route: result.Destination,
		nav: entity.NavState{
			Email:   email,
			Purpose: result.NextPurpose,
			Token:   result.Token,
		},
	}
}

func (c *Console) otpScreen(ctx context.Context, nav entity.NavState) consoleNav {
	flow := c.uc.NewOTPFlow(nav, c)
	flow.Start(ctx)
	defer flow.Close()

	c.printf("\n== %s ==\n%s\n", flow.Title(), flow.Description())
	c.printf("(type the 4 digits, 'v' verify, 'r' resend, 'b' back to sign in)\n")

	for {
		c.printf("code [%s%s%s%s] expires in %s",
			orDot(flow.Digit(0)), orDot(flow.Digit(1)), orDot(flow.Digit(2)), orDot(flow.Digit(3)),
			countdown.FormatMMSS(flow.ExpiryRemaining()),
		)
		if r := flow.ResendRemaining(); r > 0 {
			c.printf(" (resend in %ds)", r)
		}
		c.printf("\n> ")

		line, ok := c.readLine()
		if !ok {
			return consoleNav{route: entity.RouteSignIn}
		}

		switch strings.TrimSpace(line) {
		case "b":
			return consoleNav{route: entity.RouteSignIn}

		case "r":
			result := flow.Resend(ctx)
			c.printf("%s\n", result.Message)

		case "v":
			result := flow.Verify(ctx)
			c.printf("%s\n", result.Message)
			if result.Outcome != entity.OutcomeSuccess {
				continue
			}

			// the flow navigates after its redirect delay
			select {
			case <-ctx.Done():
				return consoleNav{route: entity.RouteSignIn}
			case n := <-c.navCh:
				return n
			}

		default:
			c.enterDigits(flow, strings.TrimSpace(line))
		}
	}
}

func (c *Console) resetPasswordScreen(ctx context.Context, nav entity.NavState) consoleNav {
	c.printf("\n== Reset Password ==\n")

	result, err := c.uc.ResetPassword(ctx, usecase.ResetPasswordInput{
		Token:              nav.Token,
		NewPassword:        c.prompt("New password: "),
		ConfirmNewPassword: c.prompt("Confirm password: "),
	})
	if err != nil {
		c.printf("error: %v\n", err)
		return consoleNav{route: entity.RouteSignIn}
	}

	c.printf("%s\n", result.Message)

	if result.Destination != "" {
		return consoleNav{route: result.Destination, nav: nav}
	}
	return consoleNav{route: entity.RouteResetPassword, nav: nav}
}

func (c *Console) landingScreen(ctx context.Context, route entity.Route) (consoleNav, bool) {
	session, fallback, ok := c.uc.Authorize(ctx)
	if !ok {
		c.printf("\nPlease sign in to continue.\n")
		return consoleNav{route: fallback}, false
	}

	if route == entity.RouteClientLanding {
		c.printf("\n== ScanMe ==\nSigned in as %s. Ready to scan.\n", session.Role)
	} else {
		c.printf("\n== Dashboard ==\nSigned in as %s.\n", session.Role)
	}
	c.printf("('l' logout, 'q' quit)\n")

	for {
		switch c.prompt("> ") {
		case "l":
			if err := c.uc.Logout(ctx); err != nil {
				c.printf("error: %v\n", err)
			}
			return consoleNav{route: entity.RouteSignIn}, false
		case "q":
			return consoleNav{}, true
		}
	}
}

func (c *Console) enterDigits(flow *usecase.OTPFlow, line string) {
	if line == "" {
		return
	}

	pos := flow.Focus()
	for _, r := range line {
		if pos >= entity.OtpLength {
			break
		}
		if flow.EditDigit(pos, string(r)) {
			pos = flow.Focus()
		} else {
			c.printf("ignored %q: digits only\n", string(r))
		}
	}
}

func (c *Console) prompt(label string) string {
	c.printf("%s", label)
	line, _ := c.readLine()
	return strings.TrimSpace(line)
}

func (c *Console) readLine() (string, bool) {
	if !c.in.Scan() {
		return "", false
	}
	return c.in.Text(), true
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func orDot(digit string) string {
	if digit == "" {
		return "."
	}
	return digit
}
