package auth_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	auth "github.com/goliatone/go-airline-auth"
)

// memManager is an in-memory RepositoryManager. Creates enforce the same
// unique columns the real store does and surface sqlite-shaped constraint
// errors; RunInTx snapshots the tables and restores them when the function
// fails, so transactional behavior is observable without a database.
type memManager struct {
	users    []*auth.User
	airlines []*auth.Airline
	admins   []*auth.AdminUser
	subs     []*auth.Subscription

	// conflictOnAirlineCreate simulates a racing insert that slipped past
	// the advisory pre-checks: "alias" or "contact_email".
	conflictOnAirlineCreate string
	// failSubscriptionCreate makes the last create of the registration
	// transaction fail, to observe the rollback.
	failSubscriptionCreate bool
}

func newMemManager() *memManager {
	return &memManager{}
}

type memSnapshot struct {
	users    []*auth.User
	airlines []*auth.Airline
	admins   []*auth.AdminUser
	subs     []*auth.Subscription
}

func (m *memManager) snapshot() memSnapshot {
	return memSnapshot{
		users:    append([]*auth.User(nil), m.users...),
		airlines: append([]*auth.Airline(nil), m.airlines...),
		admins:   append([]*auth.AdminUser(nil), m.admins...),
		subs:     append([]*auth.Subscription(nil), m.subs...),
	}
}

func (m *memManager) restore(s memSnapshot) {
	m.users = s.users
	m.airlines = s.airlines
	m.admins = s.admins
	m.subs = s.subs
}

func (m *memManager) RunInTx(ctx context.Context, _ *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	before := m.snapshot()
	if err := f(ctx, bun.Tx{}); err != nil {
		m.restore(before)
		return err
	}
	return nil
}

func (m *memManager) Users() auth.Users                 { return memUsers{m} }
func (m *memManager) Airlines() auth.Airlines           { return memAirlines{m} }
func (m *memManager) AdminUsers() auth.AdminUsers       { return memAdmins{m} }
func (m *memManager) Subscriptions() auth.Subscriptions { return memSubs{m} }

var _ auth.RepositoryManager = (*memManager)(nil)

func notFound() error {
	return repository.NewRecordNotFound()
}

type memUsers struct{ m *memManager }

func (r memUsers) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, notFound()
}

func (r memUsers) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	return r.CreateTx(ctx, nil, record)
}

func (r memUsers) CreateTx(_ context.Context, _ bun.IDB, record *auth.User) (*auth.User, error) {
	record.EnsureDefaults()
	for _, u := range r.m.users {
		if u.Email == record.Email {
			return nil, errors.New("UNIQUE constraint failed: users.email")
		}
	}
	r.m.users = append(r.m.users, record)
	return record, nil
}

type memAirlines struct{ m *memManager }

func (r memAirlines) GetByAlias(_ context.Context, alias string) (*auth.Airline, error) {
	for _, a := range r.m.airlines {
		if a.Alias == alias {
			return a, nil
		}
	}
	return nil, notFound()
}

func (r memAirlines) GetByContactEmail(_ context.Context, email string) (*auth.Airline, error) {
	for _, a := range r.m.airlines {
		if a.ContactEmail == email {
			return a, nil
		}
	}
	return nil, notFound()
}

func (r memAirlines) CreateTx(_ context.Context, _ bun.IDB, record *auth.Airline) (*auth.Airline, error) {
	if col := r.m.conflictOnAirlineCreate; col != "" {
		return nil, fmt.Errorf("UNIQUE constraint failed: airlines.%s", col)
	}
	record.EnsureDefaults()
	for _, a := range r.m.airlines {
		if a.Alias == record.Alias {
			return nil, errors.New("UNIQUE constraint failed: airlines.alias")
		}
		if a.ContactEmail == record.ContactEmail {
			return nil, errors.New("UNIQUE constraint failed: airlines.contact_email")
		}
	}
	r.m.airlines = append(r.m.airlines, record)
	return record, nil
}

type memAdmins struct{ m *memManager }

func (r memAdmins) GetByEmail(_ context.Context, email string) (*auth.AdminUser, error) {
	for _, a := range r.m.admins {
		if a.AdminEmail == email {
			admin := *a
			for _, air := range r.m.airlines {
				if air.ID == a.AirlineID {
					admin.Airline = air
					break
				}
			}
			return &admin, nil
		}
	}
	return nil, notFound()
}

func (r memAdmins) CreateTx(_ context.Context, _ bun.IDB, record *auth.AdminUser) (*auth.AdminUser, error) {
	record.EnsureDefaults()
	for _, a := range r.m.admins {
		if a.AdminEmail == record.AdminEmail {
			return nil, errors.New("UNIQUE constraint failed: admin_users.admin_email")
		}
	}
	r.m.admins = append(r.m.admins, record)
	return record, nil
}

type memSubs struct{ m *memManager }

func (r memSubs) CreateTx(_ context.Context, _ bun.IDB, record *auth.Subscription) (*auth.Subscription, error) {
	if r.m.failSubscriptionCreate {
		return nil, errors.New("disk I/O error")
	}
	record.EnsureDefaults()
	r.m.subs = append(r.m.subs, record)
	return record, nil
}

// newTestTokenService issues tokens good for an hour under a fixed key.
func newTestTokenService() auth.TokenService {
	return auth.NewTokenService([]byte("test-signing-key"), 1, "", nil, nil)
}

// newTestHasher uses bcrypt's minimum cost so suites stay fast.
func newTestHasher() auth.Hasher {
	return auth.NewHasher(4)
}
