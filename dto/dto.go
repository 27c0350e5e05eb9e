// Package dto shapes and validates the payloads the dispatcher hands to
// the auth core. Field rules and their Spanish messages mirror what the
// platform's clients already rely on; by the time a payload leaves this
// package its format constraints hold.
package dto

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/nyaruka/phonenumbers"

	auth "github.com/goliatone/go-airline-auth"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryDateRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

const msgInvalidEmail = "El formato del correo electrónico no es válido"

// RegisterUser is the auth.register.user payload.
type RegisterUser struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (r RegisterUser) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Required, validation.Length(6, 0)),
	)
}

// LoginUser is the auth.login.user payload.
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l LoginUser) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Email, validation.Required, is.Email),
		validation.Field(&l.Password, validation.Required),
	)
}

// AirlineData is the tenant block of a subscription registration.
type AirlineData struct {
	AirlineName  string `json:"airline_name"`
	Alias        string `json:"alias"`
	Country      string `json:"country"`
	ContactEmail string `json:"contact_email"`
	PhoneNumber  string `json:"phone_number"`
}

func (a AirlineData) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AirlineName, validation.Required,
			validation.Length(3, 0).Error("El nombre de la aerolínea debe tener al menos 3 caracteres")),
		validation.Field(&a.Alias, validation.Required,
			validation.Length(2, 0).Error("El alias debe tener al menos 2 caracteres")),
		validation.Field(&a.Country, validation.Required,
			validation.Length(2, 0).Error("El país debe tener al menos 2 caracteres")),
		validation.Field(&a.ContactEmail, validation.Required, is.Email.Error(msgInvalidEmail)),
		validation.Field(&a.PhoneNumber, validation.Required,
			validation.Length(7, 0).Error("El número de teléfono debe tener al menos 7 caracteres"),
			validation.By(phoneNumber)),
	)
}

// AdminData is the administrator block of a subscription registration.
type AdminData struct {
	AdminName     string `json:"admin_name"`
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminPhone    string `json:"admin_phone,omitempty"`
}

func (a AdminData) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.AdminName, validation.Required,
			validation.Length(2, 0).Error("El nombre del administrador debe tener al menos 2 caracteres")),
		validation.Field(&a.AdminEmail, validation.Required, is.Email.Error(msgInvalidEmail)),
		validation.Field(&a.AdminPassword, validation.Required, validation.By(strongPassword)),
		validation.Field(&a.AdminPhone, validation.By(phoneNumber)),
	)
}

// PaymentData is the card block of a subscription registration. Plan is
// optional; the store defaults it.
type PaymentData struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	ExpiryDate     string `json:"expiry_date"`
	CVV            string `json:"cvv"`
	Plan           string `json:"plan,omitempty"`
}

func (p PaymentData) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.CardNumber, validation.Required,
			validation.Match(cardNumberRe).Error("El número de tarjeta debe tener exactamente 16 dígitos")),
		validation.Field(&p.CardholderName, validation.Required,
			validation.Length(2, 0).Error("El nombre del titular es obligatorio")),
		validation.Field(&p.ExpiryDate, validation.Required,
			validation.Match(expiryDateRe).Error("La fecha debe tener el formato MM/YY")),
		validation.Field(&p.CVV, validation.Required,
			validation.Match(cvvRe).Error("El CVV debe tener 3 o 4 dígitos")),
	)
}

// RegisterSubscription is the auth.register.subscription payload.
type RegisterSubscription struct {
	Airline AirlineData `json:"airline"`
	Admin   AdminData   `json:"admin"`
	Payment PaymentData `json:"payment"`
}

func (r RegisterSubscription) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Airline),
		validation.Field(&r.Admin),
		validation.Field(&r.Payment),
	)
}

// Registration converts the validated payload into the core's input shape.
func (r RegisterSubscription) Registration() auth.TenantRegistration {
	return auth.TenantRegistration{
		Airline: auth.AirlineData{
			AirlineName:  r.Airline.AirlineName,
			Alias:        r.Airline.Alias,
			Country:      r.Airline.Country,
			ContactEmail: r.Airline.ContactEmail,
			PhoneNumber:  r.Airline.PhoneNumber,
		},
		Admin: auth.AdminData{
			AdminName:     r.Admin.AdminName,
			AdminEmail:    r.Admin.AdminEmail,
			AdminPassword: r.Admin.AdminPassword,
			AdminPhone:    r.Admin.AdminPhone,
		},
		Payment: auth.PaymentData{
			CardNumber:     r.Payment.CardNumber,
			CardholderName: r.Payment.CardholderName,
			ExpiryDate:     r.Payment.ExpiryDate,
			CVV:            r.Payment.CVV,
			Plan:           r.Payment.Plan,
		},
	}
}

// LoginAirline is the auth.login.airline payload.
type LoginAirline struct {
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
}

func (l LoginAirline) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.AdminEmail, validation.Required, is.Email.Error(msgInvalidEmail)),
		validation.Field(&l.AdminPassword, validation.Required),
	)
}

// strongPassword enforces the admin password policy: at least 8
// characters with upper case, lower case, and digits.
func strongPassword(value any) error {
	s, _ := value.(string)

	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if utf8.RuneCountInString(s) < 8 || !hasUpper || !hasLower || !hasDigit {
		return errors.New("La contraseña debe tener al menos 8 caracteres, incluir mayúsculas, minúsculas y números")
	}

	return nil
}

// phoneNumber checks internationally formatted numbers against the
// phone metadata library. Bare national numbers only get the length rule;
// there is no reliable region to parse them under.
func phoneNumber(value any) error {
	s, _ := value.(string)
	if s == "" || !strings.HasPrefix(s, "+") {
		return nil
	}

	num, err := phonenumbers.Parse(s, "")
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return errors.New("El número de teléfono no es válido")
	}

	return nil
}
