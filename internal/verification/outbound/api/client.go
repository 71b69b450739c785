// Package api is the outbound HTTP client for the remote auth service.
//
// It speaks the service's wire format and returns decoded replies; deciding
// what a reply means is left to the usecases.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/scanme/authflow/internal/pkg/goerror"
	"github.com/scanme/authflow/internal/pkg/uid"
	"github.com/scanme/authflow/internal/verification/entity"
)

const headerRequestID = "X-Request-ID"

// Client calls the remote auth service over HTTP.
type Client struct {
	baseURL string
	httpc   *http.Client
	uid     uid.StringID
}

// NewClient creates a Client against the given base URL, e.g.
// "http://localhost:8080/api".
func NewClient(baseURL string, timeout time.Duration, id uid.StringID) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
		uid:     id,
	}
}

type wireUser struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
}

type wireReply struct {
	Message           string   `json:"message"`
	Error             string   `json:"error"`
	Token             string   `json:"token"`
	VerificationToken string   `json:"verificationToken"`
	User              wireUser `json:"user"`
}

// Login submits credentials.
func (c *Client) Login(ctx context.Context, email, password string) (entity.ServiceReply, error) {
	body := map[string]string{"email": email, "password": password}

	return c.do(ctx, "/auth/login", body, nil)
}

// Register submits a sign-up.
func (c *Client) Register(ctx context.Context, reg entity.Registration) (entity.ServiceReply, error) {
	body := map[string]string{
		"firstName":       reg.FirstName,
		"lastName":        reg.LastName,
		"email":           reg.Email,
		"phone":           reg.Phone,
		"password":        reg.Password,
		"confirmPassword": reg.ConfirmPassword,
	}

	return c.do(ctx, "/auth/register", body, nil)
}

// VerifyEmail submits a passcode proving ownership of the email address.
// The identifier is the verification token issued for the attempt; the
// service accepts it in the email field.
func (c *Client) VerifyEmail(ctx context.Context, identifier, code string) (entity.ServiceReply, error) {
	body := map[string]string{"email": identifier, "otpCode": code}

	return c.do(ctx, "/auth/verify-email", body, nil)
}

// VerifyOTP submits a passcode for second-factor or reset authorization.
// The service takes these as query parameters, not a body.
func (c *Client) VerifyOTP(ctx context.Context, identifier, code string) (entity.ServiceReply, error) {
	q := url.Values{"email": {identifier}, "otpCode": {code}}

	return c.do(ctx, "/auth/verify-otp", nil, q)
}

// ResendOTP asks the service to issue a fresh passcode for the given context
// tag.
func (c *Client) ResendOTP(ctx context.Context, identifier, tag string) (entity.ServiceReply, error) {
	q := url.Values{"email": {identifier}, "context": {tag}}

	return c.do(ctx, "/auth/resend-otp", nil, q)
}

// ForgotPassword starts a password reset for the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (entity.ServiceReply, error) {
	q := url.Values{"email": {email}}

	return c.do(ctx, "/auth/forgot-password", nil, q)
}

// ResetPassword sets a new password using a reset authorization token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword, confirmNewPassword string) (entity.ServiceReply, error) {
	body := map[string]string{
		"newPassword":        newPassword,
		"confirmNewPassword": confirmNewPassword,
	}
	q := url.Values{"token": {token}}

	return c.do(ctx, "/auth/reset-password", body, q)
}

func (c *Client) do(ctx context.Context, path string, body any, query url.Values) (entity.ServiceReply, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return entity.ServiceReply{}, goerror.NewServer(err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, payload)
	if err != nil {
		return entity.ServiceReply{}, goerror.NewServer(err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.uid != nil {
		req.Header.Set(headerRequestID, c.uid.Generate())
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return entity.ServiceReply{}, goerror.NewNetwork(err)
	}
	defer resp.Body.Close()

	var wire wireReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&wire); err != nil && err != io.EOF {
		return entity.ServiceReply{}, goerror.NewServer(fmt.Errorf("decode %s reply: %w", path, err))
	}

	return entity.ServiceReply{
		Status:            resp.StatusCode,
		Message:           wire.Message,
		Error:             wire.Error,
		Token:             wire.Token,
		VerificationToken: wire.VerificationToken,
		User: entity.ServiceUser{
			FirstName: wire.User.FirstName,
			LastName:  wire.User.LastName,
			Email:     wire.User.Email,
			Phone:     wire.User.Phone,
			Role:      wire.User.Role,
		},
	}, nil
}
