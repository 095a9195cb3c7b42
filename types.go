package auth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Register(ctx context.Context, registration Registration, password string) (*AuthResult, error)
	ChangePassword(ctx context.Context, identityID int64, oldPassword, newPassword string) (bool, error)
	ResolveIdentity(ctx context.Context, token string) (Identity, error)
	IsTokenValid(token string) bool
}

// Identity holds the attributes of a resolved identity
type Identity interface {
	ID() int64
	Username() string
	Email() string
	Role() string
}

// Config holds auth options. The signing key is mandatory; a zero token
// expiration falls back to the package default.
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

// StaticConfig is a plain-value Config for callers that source their
// settings elsewhere (env, files) and just need to hand them over.
type StaticConfig struct {
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        []string
}

func (c StaticConfig) GetSigningKey() string   { return c.SigningKey }
func (c StaticConfig) GetTokenExpiration() int { return c.TokenExpiration }
func (c StaticConfig) GetIssuer() string       { return c.Issuer }
func (c StaticConfig) GetAudience() []string   { return c.Audience }

var _ Config = StaticConfig{}

// UserStore is the credential store contract this package consumes. A
// concrete adapter (see NewUserStore for the bun-backed one) translates
// its engine's failures into the package error taxonomy: lookups that
// match nothing return a CategoryNotFound error, duplicate usernames or
// emails on Create return ErrUsernameTaken/ErrEmailTaken, and anything
// else (connection loss, timeouts) surfaces as a storage error so callers
// never mistake an outage for a missing record.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	Update(ctx context.Context, record *User) (*User, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
