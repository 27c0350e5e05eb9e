package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/goliatone/go-airline-auth"
	"github.com/goliatone/go-airline-auth/natsrpc"
	"github.com/goliatone/go-airline-auth/repository"
)

// Config is read from the environment; a local .env file is honored when
// present. The signing key has no default on purpose.
type Config struct {
	NATSURL         string   `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	QueueGroup      string   `env:"NATS_QUEUE_GROUP" envDefault:"auth-service"`
	DatabaseDSN     string   `env:"DATABASE_DSN" envDefault:"file:airline_auth.db?cache=shared&mode=rwc"`
	SigningKey      string   `env:"JWT_SECRET,required"`
	TokenExpiration int      `env:"JWT_EXPIRATION_HOURS" envDefault:"2"`
	Issuer          string   `env:"JWT_ISSUER" envDefault:"airline-auth"`
	Audience        []string `env:"JWT_AUDIENCE" envSeparator:","`
	BcryptCost      int      `env:"BCRYPT_COST" envDefault:"10"`
}

func (c Config) GetSigningKey() string   { return c.SigningKey }
func (c Config) GetTokenExpiration() int { return c.TokenExpiration }
func (c Config) GetIssuer() string       { return c.Issuer }
func (c Config) GetAudience() []string   { return c.Audience }
func (c Config) GetBcryptCost() int      { return c.BcryptCost }

var _ auth.Config = Config{}

// redacted is what gets printed at boot.
func (c Config) redacted() Config {
	c.SigningKey = "********"
	return c
}

func main() {
	_ = godotenv.Load()

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Debug),
		glog.WithName("airline-auth"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	fmt.Println(print.MaybeHighlightJSON(cfg.redacted()))

	ctx := context.Background()

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())

	if err := repository.CreateSchema(ctx, db); err != nil {
		log.Fatal(err)
	}
	lgr.GetLogger("store").Info("store connected", "dsn", cfg.DatabaseDSN)

	manager := repository.NewManager(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(
		[]byte(cfg.SigningKey),
		cfg.TokenExpiration,
		cfg.Issuer,
		cfg.Audience,
		lgr.GetLogger("tokens"),
	)

	users := auth.NewUserDirectory(manager, tokens, hasher).
		WithLogger(lgr.GetLogger("users"))
	tenants := auth.NewTenantRegistry(manager, tokens, hasher).
		WithLogger(lgr.GetLogger("tenants"))
	orch := auth.NewOrchestrator(users, tenants, tokens).
		WithLogger(lgr.GetLogger("auth"))

	nc, err := nats.Connect(cfg.NATSURL,
		nats.Name("airline-auth"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		log.Fatal(err)
	}

	srv := natsrpc.NewServer(nc, orch,
		natsrpc.WithLogger(lgr.GetLogger("nats")),
		natsrpc.WithQueueGroup(cfg.QueueGroup),
	)
	if err := srv.Start(); err != nil {
		log.Fatal(err)
	}

	lgr.GetLogger("app").Info("auth service ready", "nats", cfg.NATSURL, "queue", cfg.QueueGroup)

	WaitExitSignal()

	if err := srv.Stop(); err != nil {
		lgr.GetLogger("app").Error("shutdown drain failed", "error", err)
	}
	if err := db.Close(); err != nil {
		lgr.GetLogger("app").Error("store close failed", "error", err)
	}
}

// WaitExitSignal blocks until the process is told to stop.
func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	return <-ch
}
