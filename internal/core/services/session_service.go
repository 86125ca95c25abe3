package services

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/corebank/banking-backend/internal/apperrors"
	"github.com/corebank/banking-backend/internal/core/domain"
	portssvc "github.com/corebank/banking-backend/internal/core/ports/services"
	"github.com/corebank/banking-backend/internal/utils"
)

const sessionSweepInterval = time.Minute

// SessionRegistry issues, verifies, and revokes bearer session tokens.
//
// Tokens are HS256-signed JWTs carrying the user id and a random 128-bit jti,
// but the in-memory registry remains the sole authority: a token verifies only
// while its entry is present and unexpired here, which makes revocation
// effective and invalidates every session on restart. The expiry window is
// fixed at issuance; verification never slides it.
//
// All state is guarded by a single RWMutex. No operation blocks on I/O, so
// the registry is safe to call from any number of request handlers.
type SessionRegistry struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	sessions map[string]domain.Session

	done      chan struct{}
	closeOnce sync.Once
}

var _ portssvc.SessionSvcFacade = (*SessionRegistry)(nil)

// NewSessionRegistry creates a registry with the given signing secret and
// expiry window and starts its background reaper.
func NewSessionRegistry(secret, issuer string, ttl time.Duration) *SessionRegistry {
	return NewSessionRegistryWithClock(secret, issuer, ttl, time.Now)
}

// NewSessionRegistryWithClock is NewSessionRegistry with an injected clock,
// used by expiry tests.
func NewSessionRegistryWithClock(secret, issuer string, ttl time.Duration, now func() time.Time) *SessionRegistry {
	r := &SessionRegistry{
		secret:   []byte(secret),
		issuer:   issuer,
		ttl:      ttl,
		now:      now,
		sessions: make(map[string]domain.Session),
		done:     make(chan struct{}),
	}
	go r.reap()
	return r
}

// Issue creates a session for the user and returns its bearer token.
func (r *SessionRegistry) Issue(ctx context.Context, userID string) (string, error) {
	jti, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to generate session id", err)
	}

	issuedAt := r.now()
	expiresAt := issuedAt.Add(r.ttl)

	claims := jwt.RegisteredClaims{
		Issuer:    r.issuer,
		Subject:   userID,
		ID:        jti,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(r.secret)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to sign session token", err)
	}

	r.mu.Lock()
	r.sessions[token] = domain.Session{UserID: userID, IssuedAt: issuedAt, ExpiresAt: expiresAt}
	r.mu.Unlock()

	return token, nil
}

// Verify resolves a token to its user id. An expired session behaves as
// unknown and is evicted as a side effect.
func (r *SessionRegistry) Verify(ctx context.Context, token string) (string, error) {
	r.mu.RLock()
	session, ok := r.sessions[token]
	r.mu.RUnlock()

	if !ok {
		return "", apperrors.ErrUnauthorized
	}
	if session.ExpiredAt(r.now()) {
		r.mu.Lock()
		delete(r.sessions, token)
		r.mu.Unlock()
		return "", apperrors.ErrSessionExpired
	}

	// The registry entry is authoritative, but the signature must still
	// bind the token bytes to this process's secret.
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return r.secret, nil
	}, jwt.WithTimeFunc(r.now))
	if err != nil || !parsed.Valid || claims.Subject != session.UserID {
		return "", apperrors.ErrUnauthorized
	}

	return session.UserID, nil
}

// Revoke deletes a session. Revoking an unknown token is a no-op.
func (r *SessionRegistry) Revoke(ctx context.Context, token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}

// Len reports the number of live entries, expired or not. Test support.
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Close stops the background reaper. Safe to call more than once.
func (r *SessionRegistry) Close() {
	r.closeOnce.Do(func() { close(r.done) })
}

// reap proactively evicts expired sessions so lazily-unused tokens do not
// accumulate.
func (r *SessionRegistry) reap() {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			now := r.now()
			r.mu.Lock()
			for token, session := range r.sessions {
				if session.ExpiredAt(now) {
					delete(r.sessions, token)
				}
			}
			r.mu.Unlock()
		}
	}
}
