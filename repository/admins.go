package repository

import (
	"context"

	auth "github.com/goliatone/go-airline-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type admins struct {
	repository.Repository[*auth.AdminUser]
	db *bun.DB
}

var _ auth.AdminUsers = (*admins)(nil)

// NewAdminUsersRepository creates the administrator store.
func NewAdminUsersRepository(db *bun.DB) auth.AdminUsers {
	repo := repository.NewRepository[*auth.AdminUser](db, repository.ModelHandlers[*auth.AdminUser]{
		NewRecord: func() *auth.AdminUser { return &auth.AdminUser{} },
		GetID: func(a *auth.AdminUser) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *auth.AdminUser, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "admin_email"
		},
	})

	return &admins{Repository: repo, db: db}
}

// GetByEmail loads the admin together with its airline; admin login needs
// both to build the claims payload.
func (r *admins) GetByEmail(ctx context.Context, email string) (*auth.AdminUser, error) {
	record := &auth.AdminUser{}

	err := r.db.NewSelect().
		Model(record).
		Relation("Airline").
		Where("?TableAlias.admin_email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{"admin_email": email})
		}
		return nil, err
	}

	return record, nil
}

func (r *admins) CreateTx(ctx context.Context, tx bun.IDB, record *auth.AdminUser) (*auth.AdminUser, error) {
	record.EnsureDefaults()
	return r.Repository.CreateTx(ctx, tx, record)
}
