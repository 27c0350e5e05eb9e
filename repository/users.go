package repository

import (
	"context"

	auth "github.com/goliatone/go-airline-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type users struct {
	repository.Repository[*auth.User]
	db *bun.DB
}

var _ auth.Users = (*users)(nil)

// NewUsersRepository creates the end user store.
func NewUsersRepository(db *bun.DB) auth.Users {
	repo := repository.NewRepository[*auth.User](db, repository.ModelHandlers[*auth.User]{
		NewRecord: func() *auth.User { return &auth.User{} },
		GetID: func(u *auth.User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *auth.User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &users{Repository: repo, db: db}
}

func (r *users) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	record := &auth.User{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"email": email})
		}
		return nil, err
	}

	return record, nil
}

func (r *users) Create(ctx context.Context, record *auth.User) (*auth.User, error) {
	return r.CreateTx(ctx, r.db, record)
}

func (r *users) CreateTx(ctx context.Context, tx bun.IDB, record *auth.User) (*auth.User, error) {
	record.EnsureDefaults()
	return r.Repository.CreateTx(ctx, tx, record)
}
