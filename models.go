package auth

import (
	"time"

	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole string

const (
	// RoleReadOnly can only view records
	RoleReadOnly UserRole = "read_only"
	// RoleSupport handles support activity (view, edit)
	RoleSupport UserRole = "support"
	// RoleSalesRep owns customers and leads (view, edit, create)
	RoleSalesRep UserRole = "sales_rep"
	// RoleManager runs a sales team (view, edit, create, delete)
	RoleManager UserRole = "manager"
	// RoleAdmin administers the whole CRM
	RoleAdmin UserRole = "admin"
)

// User is the credential record backing every identity. The store owns
// it; this package only reads it and writes the password and login
// bookkeeping fields.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            int64      `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	IsActive      bool       `bun:"is_active" json:"is_active,omitempty"`
	Avatar        string     `bun:"avatar" json:"avatar,omitempty"`
	Phone         string     `bun:"phone_number" json:"phone_number,omitempty"`
	Department    string     `bun:"department" json:"department,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	LastLoginAt   *time.Time `bun:"last_login_at,nullzero" json:"last_login_at,omitempty"`
}

// FullName joins first and last name for display purposes
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// AuthResult is the value every authentication operation resolves to on
// success: the minted token plus a snapshot of who it was minted for.
type AuthResult struct {
	Token    string   `json:"token"`
	Identity Identity `json:"identity"`
}

// Registration carries the attributes a caller provides when creating an
// account. The password travels as a separate argument so it never ends
// up logged or serialized with the profile fields.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}
