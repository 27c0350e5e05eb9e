package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	auth "github.com/goliatone/go-airline-auth"
	"github.com/uptrace/bun"
)

type mngr struct {
	db            *bun.DB
	users         auth.Users
	airlines      auth.Airlines
	admins        auth.AdminUsers
	subscriptions auth.Subscriptions
}

// NewManager wires the entity repositories over one bun DB.
func NewManager(db *bun.DB) auth.RepositoryManager {
	return &mngr{
		db:            db,
		users:         NewUsersRepository(db),
		airlines:      NewAirlinesRepository(db),
		admins:        NewAdminUsersRepository(db),
		subscriptions: NewSubscriptionsRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.airlines == nil {
		return errors.New("repository airlines should be initialized")
	}

	if m.admins == nil {
		return errors.New("repository admins should be initialized")
	}

	if m.subscriptions == nil {
		return errors.New("repository subscriptions should be initialized")
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

func (m mngr) Users() auth.Users {
	return m.users
}

func (m mngr) Airlines() auth.Airlines {
	return m.airlines
}

func (m mngr) AdminUsers() auth.AdminUsers {
	return m.admins
}

func (m mngr) Subscriptions() auth.Subscriptions {
	return m.subscriptions
}
