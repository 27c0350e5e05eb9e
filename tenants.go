package auth

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

// AirlineData is the tenant identity submitted during registration.
type AirlineData struct {
	AirlineName  string
	Alias        string
	Country      string
	ContactEmail string
	PhoneNumber  string
}

// AdminData is the first administrator of a new tenant.
type AdminData struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
	AdminPhone    string
}

// PaymentData carries the card-like fields recorded on the subscription.
// Plan is optional, defaulting to DefaultSubscriptionPlan.
type PaymentData struct {
	CardNumber     string
	CardholderName string
	ExpiryDate     string
	CVV            string
	Plan           string
}

// TenantRegistration bundles the three payloads of a tenant signup.
type TenantRegistration struct {
	Airline AirlineData
	Admin   AdminData
	Payment PaymentData
}

// TenantSession is the result of registering a tenant: admin claims, the
// public airline and subscription views, and a signed admin token.
type TenantSession struct {
	User         AdminClaims        `json:"user"`
	Airline      AirlinePublic      `json:"airline"`
	Subscription SubscriptionPublic `json:"subscription"`
	Token        string             `json:"token"`
}

// AdminSession is the result of an administrator login.
type AdminSession struct {
	User    AdminClaims   `json:"user"`
	Airline AirlinePublic `json:"airline"`
	Token   string        `json:"token"`
}

// TenantRegistry creates and authenticates tenants: the airline, its first
// administrator, and its subscription record.
type TenantRegistry struct {
	repo   RepositoryManager
	tokens TokenService
	hasher PasswordAuthenticator
	logger Logger
}

// NewTenantRegistry creates a TenantRegistry.
func NewTenantRegistry(repo RepositoryManager, tokens TokenService, hasher PasswordAuthenticator) *TenantRegistry {
	return &TenantRegistry{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: defLogger{},
	}
}

func (r *TenantRegistry) WithLogger(logger Logger) *TenantRegistry {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Register runs the tenant signup. Duplicate checks happen in order (alias,
// airline email, admin email) so the first violated constraint is the one
// reported; the three creates then run inside a single transaction, so a
// failed signup leaves no partial tenant behind.
func (r *TenantRegistry) Register(ctx context.Context, reg TenantRegistration) (*TenantSession, error) {
	if err := r.checkDuplicates(ctx, reg); err != nil {
		return nil, err
	}

	hash, err := r.hasher.HashPassword(reg.Admin.AdminPassword)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash admin password")
	}

	var (
		airline      *Airline
		admin        *AdminUser
		subscription *Subscription
	)

	err = r.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error

		airline, err = r.repo.Airlines().CreateTx(ctx, tx, &Airline{
			AirlineName:  reg.Airline.AirlineName,
			Alias:        reg.Airline.Alias,
			Country:      reg.Airline.Country,
			ContactEmail: reg.Airline.ContactEmail,
			PhoneNumber:  reg.Airline.PhoneNumber,
		})
		if err != nil {
			return r.airlineCreateError(err, reg.Airline)
		}

		admin, err = r.repo.AdminUsers().CreateTx(ctx, tx, &AdminUser{
			AdminName:         reg.Admin.AdminName,
			AdminEmail:        reg.Admin.AdminEmail,
			AdminPasswordHash: hash,
			AdminPhone:        reg.Admin.AdminPhone,
			AirlineID:         airline.ID,
		})
		if err != nil {
			if IsUniqueViolation(err) {
				return NewDuplicateAdminEmailError(reg.Admin.AdminEmail)
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create admin user")
		}

		subscription, err = r.repo.Subscriptions().CreateTx(ctx, tx, &Subscription{
			Plan:           reg.Payment.Plan,
			CardNumber:     reg.Payment.CardNumber,
			CardholderName: reg.Payment.CardholderName,
			ExpiryDate:     reg.Payment.ExpiryDate,
			CVV:            reg.Payment.CVV,
			AirlineID:      airline.ID,
		})
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create subscription")
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "tenant registration transaction failed")
	}

	claims := admin.Claims(airline)

	token, err := r.tokens.Issue(claims)
	if err != nil {
		r.logger.Error("tenant registry failed to issue token", "error", err)
		return nil, err
	}

	return &TenantSession{
		User:         claims,
		Airline:      airline.Public(),
		Subscription: subscription.Public(),
		Token:        token,
	}, nil
}

// Login verifies an administrator's email/password pair. Unknown emails and
// wrong passwords fail with the same error.
func (r *TenantRegistry) Login(ctx context.Context, email, password string) (*AdminSession, error) {
	admin, err := r.repo.AdminUsers().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidAdminCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up admin user")
	}

	if err := r.hasher.ComparePasswordAndHash(password, admin.AdminPasswordHash); err != nil {
		return nil, ErrInvalidAdminCredentials
	}

	if admin.Airline == nil {
		return nil, goerrors.New("admin user has no airline", goerrors.CategoryInternal).
			WithMetadata(map[string]any{"admin_id": admin.ID.String()})
	}

	claims := admin.Claims(admin.Airline)

	token, err := r.tokens.Issue(claims)
	if err != nil {
		r.logger.Error("tenant registry failed to issue token", "error", err)
		return nil, err
	}

	return &AdminSession{
		User:    claims,
		Airline: admin.Airline.Public(),
		Token:   token,
	}, nil
}

// checkDuplicates runs the ordered pre-checks. They are advisory: the store
// still enforces uniqueness during the creates.
func (r *TenantRegistry) checkDuplicates(ctx context.Context, reg TenantRegistration) error {
	if _, err := r.repo.Airlines().GetByAlias(ctx, reg.Airline.Alias); err == nil {
		return NewDuplicateAliasError(reg.Airline.Alias)
	} else if !repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up airline by alias")
	}

	if _, err := r.repo.Airlines().GetByContactEmail(ctx, reg.Airline.ContactEmail); err == nil {
		return NewDuplicateAirlineEmailError(reg.Airline.ContactEmail)
	} else if !repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up airline by email")
	}

	if _, err := r.repo.AdminUsers().GetByEmail(ctx, reg.Admin.AdminEmail); err == nil {
		return NewDuplicateAdminEmailError(reg.Admin.AdminEmail)
	} else if !repository.IsRecordNotFound(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up admin user")
	}

	return nil
}

// airlineCreateError maps a store uniqueness violation on the airline row
// to the duplicate failure the pre-check would have reported.
func (r *TenantRegistry) airlineCreateError(err error, data AirlineData) error {
	if !IsUniqueViolation(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not create airline")
	}
	if strings.Contains(err.Error(), "alias") {
		return NewDuplicateAliasError(data.Alias)
	}
	return NewDuplicateAirlineEmailError(data.ContactEmail)
}
