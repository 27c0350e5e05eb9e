package repository

import (
	"context"

	auth "github.com/goliatone/go-airline-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type airlines struct {
	repository.Repository[*auth.Airline]
	db *bun.DB
}

var _ auth.Airlines = (*airlines)(nil)

// NewAirlinesRepository creates the tenant store.
func NewAirlinesRepository(db *bun.DB) auth.Airlines {
	repo := repository.NewRepository[*auth.Airline](db, repository.ModelHandlers[*auth.Airline]{
		NewRecord: func() *auth.Airline { return &auth.Airline{} },
		GetID: func(a *auth.Airline) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *auth.Airline, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "alias"
		},
	})

	return &airlines{Repository: repo, db: db}
}

func (r *airlines) GetByAlias(ctx context.Context, alias string) (*auth.Airline, error) {
	return r.getByColumn(ctx, "alias", alias)
}

func (r *airlines) GetByContactEmail(ctx context.Context, email string) (*auth.Airline, error) {
	return r.getByColumn(ctx, "contact_email", email)
}

func (r *airlines) getByColumn(ctx context.Context, column, value string) (*auth.Airline, error) {
	record := &auth.Airline{}

	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias."+column+" = ?", value).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{column: value})
		}
		return nil, err
	}

	return record, nil
}

func (r *airlines) CreateTx(ctx context.Context, tx bun.IDB, record *auth.Airline) (*auth.Airline, error) {
	record.EnsureDefaults()
	return r.Repository.CreateTx(ctx, tx, record)
}
