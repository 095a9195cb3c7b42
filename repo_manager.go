package auth

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// RepositoryManager exposes the credential store plus a transaction
// boundary for callers that compose account writes with their own.
type RepositoryManager interface {
	Validate() error
	MustValidate()
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() UserStore
	UsersTx(tx bun.IDB) UserStore
}

type mngr struct {
	db    *bun.DB
	users UserStore
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUserStore(db),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("database handle should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() UserStore {
	return m.users
}

// UsersTx returns a store bound to the given transaction so account
// writes can join a caller-managed unit of work.
func (m mngr) UsersTx(tx bun.IDB) UserStore {
	return NewUserStore(tx)
}
