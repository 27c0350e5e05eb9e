package repository

import (
	"context"

	auth "github.com/goliatone/go-airline-auth"
	"github.com/uptrace/bun"
)

// CreateSchema creates the four tables if they do not exist. Airlines go
// first so the admin and subscription foreign keys have a target. Unique
// constraints come from the model tags; they are the real enforcement
// behind the advisory duplicate pre-checks.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.Airline)(nil),
		(*auth.User)(nil),
		(*auth.AdminUser)(nil),
		(*auth.Subscription)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return err
		}
	}

	return nil
}
