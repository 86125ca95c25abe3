package services

import "context"

// SessionSvcFacade is the session registry: it exclusively owns all bearer
// token state. Operations are in-memory and safe to call from concurrent
// request handlers; none of them blocks on I/O.
type SessionSvcFacade interface {
	// Issue creates a new session token for the user with a fixed expiry
	// window measured from issuance.
	Issue(ctx context.Context, userID string) (string, error)

	// Verify resolves a token to the bound user id. Expired tokens behave
	// as unknown (apperrors.ErrSessionExpired / apperrors.ErrUnauthorized)
	// and may be evicted as a side effect. Verification never extends the
	// expiry.
	Verify(ctx context.Context, token string) (string, error)

	// Revoke deletes a session (logout). Revoking an unknown token is a no-op.
	Revoke(ctx context.Context, token string)
}
