package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
	GetBcryptCost() int
}

// Users is the store for end user records, keyed by email.
type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, record *User) (*User, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *User) (*User, error)
}

// Airlines is the store for airline (tenant) records.
type Airlines interface {
	GetByAlias(ctx context.Context, alias string) (*Airline, error)
	GetByContactEmail(ctx context.Context, email string) (*Airline, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Airline) (*Airline, error)
}

// AdminUsers is the store for tenant administrator records. Email lookups
// load the related Airline.
type AdminUsers interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *AdminUser) (*AdminUser, error)
}

// Subscriptions is the store for subscription records.
type Subscriptions interface {
	CreateTx(ctx context.Context, tx bun.IDB, record *Subscription) (*Subscription, error)
}

// RepositoryManager exposes all repositories plus the transaction boundary
// that multi-entity writes run inside.
type RepositoryManager interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
	Users() Users
	Airlines() Airlines
	AdminUsers() AdminUsers
	Subscriptions() Subscriptions
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
