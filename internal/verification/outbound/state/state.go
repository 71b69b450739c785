// Package state persists client-side verification state: the authenticated
// session and any verification tokens waiting to be consumed by a flow.
//
// Three backends are provided. Memory is the default and lives for the
// process only. File survives restarts on a single machine. Redis shares
// state across processes.
package state

import (
	"context"

	"github.com/scanme/authflow/internal/verification/entity"
)

// Store persists the session and stashed verification tokens.
//
// Absence is not an error: Load returns a zero Session and VerificationToken
// returns an empty string when nothing is stored.
type Store interface {
	// Establish writes the session token and role together.
	Establish(ctx context.Context, s entity.Session) error

	// Load returns the stored session, or a zero Session if none exists.
	Load(ctx context.Context) (entity.Session, error)

	// Clear removes the stored session.
	Clear(ctx context.Context) error

	// StashVerificationToken keeps a verification token so a flow restarted
	// without navigation state can still find it.
	StashVerificationToken(ctx context.Context, p entity.Purpose, token string) error

	// VerificationToken returns the stashed token for the purpose, or an
	// empty string if none is stashed.
	VerificationToken(ctx context.Context, p entity.Purpose) (string, error)

	// ClearVerificationToken removes the stashed token for the purpose.
	ClearVerificationToken(ctx context.Context, p entity.Purpose) error
}
