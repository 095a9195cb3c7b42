package auth

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// CreateUsersTableSQL is the reference schema for the users table.
// Deployments with their own migration tooling should treat it as
// documentation; tests execute it directly.
var CreateUsersTableSQL = `CREATE TABLE IF NOT EXISTS users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username VARCHAR(100) NOT NULL,
	email VARCHAR(254) NOT NULL,
	password_hash VARCHAR(255) NOT NULL,
	first_name VARCHAR(100) NOT NULL,
	last_name VARCHAR(100) NOT NULL,
	user_role VARCHAR(32) NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT FALSE,
	avatar VARCHAR(255),
	phone_number VARCHAR(32),
	department VARCHAR(100),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP,
	last_login_at TIMESTAMP,
	CONSTRAINT uq_users_username UNIQUE (username),
	CONSTRAINT uq_users_email UNIQUE (email)
);`

type bunUserStore struct {
	db bun.IDB
}

// NewUserStore returns the bun-backed UserStore adapter. It translates
// engine failures into the package taxonomy: no rows found becomes a
// CategoryNotFound error, unique violations on create become
// ErrUsernameTaken/ErrEmailTaken, anything else is a storage error.
func NewUserStore(db bun.IDB) UserStore {
	return &bunUserStore{db: db}
}

func (s *bunUserStore) FindByUsername(ctx context.Context, username string) (*User, error) {
	return s.findOne(ctx, "lower(?TableAlias.username) = lower(?)", strings.TrimSpace(username))
}

func (s *bunUserStore) FindByEmail(ctx context.Context, email string) (*User, error) {
	return s.findOne(ctx, "lower(?TableAlias.email) = lower(?)", strings.TrimSpace(email))
}

func (s *bunUserStore) FindByID(ctx context.Context, id int64) (*User, error) {
	return s.findOne(ctx, "?TableAlias.id = ?", id)
}

func (s *bunUserStore) findOne(ctx context.Context, where string, arg any) (*User, error) {
	record := &User{}

	err := s.db.NewSelect().
		Model(record).
		Where(where, arg).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, recordNotFound(arg)
		}
		return nil, WrapStorageError(err)
	}

	return record, nil
}

func (s *bunUserStore) Create(ctx context.Context, record *User) (*User, error) {
	prepareUserDefaults(record)

	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, WrapStorageError(err)
	}

	return record, nil
}

func (s *bunUserStore) Update(ctx context.Context, record *User) (*User, error) {
	res, err := s.db.NewUpdate().
		Model(record).
		WherePK().
		Exec(ctx)

	if err != nil {
		if conflictErr := translateUniqueViolation(err); conflictErr != nil {
			return nil, conflictErr
		}
		return nil, WrapStorageError(err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return nil, recordNotFound(record.ID)
	}

	return record, nil
}

var _ UserStore = (*bunUserStore)(nil)

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.Role == "" {
		record.Role = RoleReadOnly
	}

	if record.CreatedAt == nil {
		now := time.Now()
		record.CreatedAt = &now
	}
}

func recordNotFound(identifier any) error {
	return goerrors.New("user not found", goerrors.CategoryNotFound).
		WithTextCode(TextCodeIdentityNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{
			"identifier": identifier,
		})
}

// translateUniqueViolation maps a store-reported duplicate to the
// matching conflict error, or returns nil when err is something else.
// Message probing covers both SQLite ("UNIQUE constraint failed:
// users.email") and Postgres ("duplicate key value violates unique
// constraint \"uq_users_email\"") phrasings.
func translateUniqueViolation(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate key") {
		return nil
	}

	if strings.Contains(msg, "email") {
		return ErrEmailTaken
	}

	return ErrUsernameTaken
}
