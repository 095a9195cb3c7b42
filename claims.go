package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims represents the identity attributes carried by a verified
// token, with role-based permission helpers.
type AuthClaims interface {
	Subject() string
	UserID() int64
	Username() string
	Email() string
	Role() string
	CanRead() bool
	CanEdit() bool
	CanCreate() bool
	CanDelete() bool
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       int64          `json:"uid,omitempty"`
	UserName  string         `json:"username,omitempty"`
	UserEmail string         `json:"email,omitempty"`
	UserRole  string         `json:"role,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"` // extension payload
}

// ClaimsMetadata exposes metadata extensions for optional context enrichment.
func (c *JWTClaims) ClaimsMetadata() map[string]any {
	return c.Metadata
}

// Verify interface compliance
var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim
func (c *JWTClaims) Subject() string {
	return c.RegisteredClaims.Subject
}

// UserID returns the user ID, falling back to the subject claim when the
// uid claim is absent
func (c *JWTClaims) UserID() int64 {
	if c.UID != 0 {
		return c.UID
	}

	id, err := strconv.ParseInt(c.RegisteredClaims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// Username returns the username claim
func (c *JWTClaims) Username() string {
	return c.UserName
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the role claim
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// CanRead checks if the user can view records
func (c *JWTClaims) CanRead() bool {
	return UserRole(c.UserRole).CanRead()
}

// CanEdit checks if the user can edit records
func (c *JWTClaims) CanEdit() bool {
	return UserRole(c.UserRole).CanEdit()
}

// CanCreate checks if the user can create records
func (c *JWTClaims) CanCreate() bool {
	return UserRole(c.UserRole).CanCreate()
}

// CanDelete checks if the user can delete records
func (c *JWTClaims) CanDelete() bool {
	return UserRole(c.UserRole).CanDelete()
}

// HasRole checks if the user has a specific role
func (c *JWTClaims) HasRole(role string) bool {
	return c.UserRole == role
}

// IsAtLeast checks if the user's role is at least the minimum required role
func (c *JWTClaims) IsAtLeast(minRole string) bool {
	return UserRole(c.UserRole).IsAtLeast(UserRole(minRole))
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
