package auth

import (
	"encoding/json"

	goerrors "github.com/goliatone/go-errors"
)

// Claims is the payload embedded in a signed token. The set of
// implementations is closed on purpose: tokens carry either a user shape
// or an admin shape, and verification recovers exactly one of the two.
type Claims interface {
	// Subject is the stable identifier the token's sub claim is set to.
	Subject() string

	sealed()
}

// UserClaims is the public identity of an end user.
type UserClaims struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (c UserClaims) Subject() string { return c.ID }
func (c UserClaims) sealed()         {}

// AirlineClaims is the airline snapshot nested inside admin claims. It
// deliberately omits contact_email and phone_number.
type AirlineClaims struct {
	ID          string `json:"id"`
	AirlineName string `json:"airline_name"`
	Alias       string `json:"alias"`
	Country     string `json:"country"`
}

// AdminClaims is the identity of a tenant administrator together with a
// snapshot of the airline it belongs to. No secret or card fields.
type AdminClaims struct {
	ID         string        `json:"id"`
	AdminName  string        `json:"admin_name"`
	AdminEmail string        `json:"admin_email"`
	Role       string        `json:"role"`
	Airline    AirlineClaims `json:"airline"`
}

func (c AdminClaims) Subject() string { return c.ID }
func (c AdminClaims) sealed()         {}

var (
	_ Claims = UserClaims{}
	_ Claims = AdminClaims{}
)

// registeredClaimKeys are transport metadata the verifier strips before the
// payload is re-embedded or returned to the caller.
var registeredClaimKeys = []string{"sub", "iat", "exp", "nbf", "iss", "aud", "jti"}

// decodeClaims rebuilds the typed payload from a verified token's claim
// map. The admin shape is recognized by its nested airline snapshot.
func decodeClaims(payload map[string]any) (Claims, error) {
	for _, key := range registeredClaimKeys {
		delete(payload, key)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode token payload")
	}

	if _, ok := payload["airline"]; ok {
		var claims AdminClaims
		if err := json.Unmarshal(raw, &claims); err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode admin claims")
		}
		return claims, nil
	}

	var claims UserClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to decode user claims")
	}
	return claims, nil
}
