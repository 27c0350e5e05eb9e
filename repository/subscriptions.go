package repository

import (
	"context"

	auth "github.com/goliatone/go-airline-auth"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type subscriptions struct {
	repository.Repository[*auth.Subscription]
	db *bun.DB
}

var _ auth.Subscriptions = (*subscriptions)(nil)

// NewSubscriptionsRepository creates the subscription store.
func NewSubscriptionsRepository(db *bun.DB) auth.Subscriptions {
	repo := repository.NewRepository[*auth.Subscription](db, repository.ModelHandlers[*auth.Subscription]{
		NewRecord: func() *auth.Subscription { return &auth.Subscription{} },
		GetID: func(s *auth.Subscription) uuid.UUID {
			if s == nil {
				return uuid.Nil
			}
			return s.ID
		},
		SetID: func(s *auth.Subscription, id uuid.UUID) {
			if s != nil {
				s.ID = id
			}
		},
		GetIdentifier: func() string {
			return "airline_id"
		},
	})

	return &subscriptions{Repository: repo, db: db}
}

func (r *subscriptions) CreateTx(ctx context.Context, tx bun.IDB, record *auth.Subscription) (*auth.Subscription, error) {
	record.EnsureDefaults()
	return r.Repository.CreateTx(ctx, tx, record)
}
