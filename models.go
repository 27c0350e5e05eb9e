package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// AdminRole is the role the store assigns to tenant administrators; callers
// never supply it.
const AdminRole = "admin"

// DefaultSubscriptionPlan applies when the payment payload omits the plan.
const DefaultSubscriptionPlan = "premium"

// Subscription statuses. New subscriptions default to pending: the card
// fields are recorded but never captured here, so the subscription is not
// active until billing runs elsewhere.
const (
	SubscriptionStatusPending = "pending"
	SubscriptionStatusActive  = "active"
)

// User is an individual end user
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	Name          string     `bun:"name,notnull" json:"name,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"password_hash,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// EnsureDefaults fills store-side defaults before the record is written.
func (u *User) EnsureDefaults() {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
}

// Public returns the user without its secret fields.
func (u *User) Public() UserClaims {
	return UserClaims{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
	}
}

// Airline is a tenant record
type Airline struct {
	bun.BaseModel `bun:"table:airlines,alias:air"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AirlineName   string     `bun:"airline_name,notnull" json:"airline_name,omitempty"`
	Alias         string     `bun:"alias,notnull,unique" json:"alias,omitempty"`
	Country       string     `bun:"country,notnull" json:"country,omitempty"`
	ContactEmail  string     `bun:"contact_email,notnull,unique" json:"contact_email,omitempty"`
	PhoneNumber   string     `bun:"phone_number,notnull" json:"phone_number,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

func (a *Airline) EnsureDefaults() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
}

// Snapshot is the airline view embedded inside admin claims.
func (a *Airline) Snapshot() AirlineClaims {
	return AirlineClaims{
		ID:          a.ID.String(),
		AirlineName: a.AirlineName,
		Alias:       a.Alias,
		Country:     a.Country,
	}
}

// Public is the external airline view; it includes contact_email but no
// phone number.
func (a *Airline) Public() AirlinePublic {
	return AirlinePublic{
		ID:           a.ID.String(),
		AirlineName:  a.AirlineName,
		Alias:        a.Alias,
		Country:      a.Country,
		ContactEmail: a.ContactEmail,
	}
}

// AirlinePublic is the airline representation returned to callers.
type AirlinePublic struct {
	ID           string `json:"id"`
	AirlineName  string `json:"airline_name"`
	Alias        string `json:"alias"`
	Country      string `json:"country"`
	ContactEmail string `json:"contact_email"`
}

// AdminUser administers exactly one airline
type AdminUser struct {
	bun.BaseModel     `bun:"table:admin_users,alias:adm"`
	ID                uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	AdminName         string     `bun:"admin_name,notnull" json:"admin_name,omitempty"`
	AdminEmail        string     `bun:"admin_email,notnull,unique" json:"admin_email,omitempty"`
	AdminPasswordHash string     `bun:"admin_password_hash,notnull" json:"admin_password_hash,omitempty"`
	AdminPhone        string     `bun:"admin_phone" json:"admin_phone,omitempty"`
	Role              string     `bun:"role,notnull" json:"role,omitempty"`
	AirlineID         uuid.UUID  `bun:"airline_id,notnull,type:uuid" json:"airline_id,omitempty"`
	Airline           *Airline   `bun:"rel:belongs-to,join:airline_id=id" json:"airline,omitempty"`
	CreatedAt         *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt         *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

func (a *AdminUser) EnsureDefaults() {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Role == "" {
		a.Role = AdminRole
	}
}

// Claims builds the admin claims payload over the given airline. The
// password hash stays behind.
func (a *AdminUser) Claims(airline *Airline) AdminClaims {
	claims := AdminClaims{
		ID:         a.ID.String(),
		AdminName:  a.AdminName,
		AdminEmail: a.AdminEmail,
		Role:       a.Role,
	}
	if airline != nil {
		claims.Airline = airline.Snapshot()
	}
	return claims
}

// Subscription records the plan and submitted card fields for one airline
type Subscription struct {
	bun.BaseModel  `bun:"table:subscriptions,alias:sub"`
	ID             uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Plan           string     `bun:"plan,notnull" json:"plan,omitempty"`
	CardNumber     string     `bun:"card_number,notnull" json:"card_number,omitempty"`
	CardholderName string     `bun:"cardholder_name,notnull" json:"cardholder_name,omitempty"`
	ExpiryDate     string     `bun:"expiry_date,notnull" json:"expiry_date,omitempty"`
	CVV            string     `bun:"cvv,notnull" json:"cvv,omitempty"`
	Status         string     `bun:"status,notnull" json:"status,omitempty"`
	AirlineID      uuid.UUID  `bun:"airline_id,notnull,type:uuid" json:"airline_id,omitempty"`
	Airline        *Airline   `bun:"rel:belongs-to,join:airline_id=id" json:"airline,omitempty"`
	CreatedAt      *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

func (s *Subscription) EnsureDefaults() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Plan == "" {
		s.Plan = DefaultSubscriptionPlan
	}
	if s.Status == "" {
		s.Status = SubscriptionStatusPending
	}
}

// Public strips the card fields from the subscription.
func (s *Subscription) Public() SubscriptionPublic {
	return SubscriptionPublic{
		ID:     s.ID.String(),
		Plan:   s.Plan,
		Status: s.Status,
	}
}

// SubscriptionPublic is the subscription representation returned to callers.
type SubscriptionPublic struct {
	ID     string `json:"id"`
	Plan   string `json:"plan"`
	Status string `json:"status"`
}
