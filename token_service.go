package auth

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	goerrors "github.com/goliatone/go-errors"
)

// TokenService issues and verifies signed, time-bounded identity tokens.
type TokenService interface {
	Issue(claims Claims) (string, error)
	Verify(tokenString string) (Claims, error)
}

// TokenServiceImpl implements the TokenService interface
type TokenServiceImpl struct {
	signingKey      []byte
	tokenExpiration int
	issuer          string
	audience        jwt.ClaimStrings
	logger          Logger
	now             func() time.Time
}

// NewTokenService creates a new TokenService instance. tokenExpiration is
// in hours.
func NewTokenService(signingKey []byte, tokenExpiration int, issuer string, audience []string, logger Logger) TokenService {
	if logger == nil {
		logger = defLogger{}
	}
	return &TokenServiceImpl{
		signingKey:      signingKey,
		tokenExpiration: tokenExpiration,
		issuer:          issuer,
		audience:        jwt.ClaimStrings(audience),
		logger:          logger,
		now:             time.Now,
	}
}

// Issue signs the given claims payload with the process-wide key, adding
// the transport metadata (sub, iat, exp, and issuer/audience when
// configured) around the payload fields.
func (ts *TokenServiceImpl) Issue(claims Claims) (string, error) {
	if claims == nil {
		return "", goerrors.New("claims must not be nil", goerrors.CategoryInternal)
	}

	payload, err := claimsToMap(claims)
	if err != nil {
		return "", err
	}

	now := ts.now()
	payload["sub"] = claims.Subject()
	payload["iat"] = jwt.NewNumericDate(now)
	payload["exp"] = jwt.NewNumericDate(now.Add(time.Duration(ts.tokenExpiration) * time.Hour))
	if ts.issuer != "" {
		payload["iss"] = ts.issuer
	}
	if len(ts.audience) > 0 {
		payload["aud"] = ts.audience
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims(payload))

	signedString, err := token.SignedString(ts.signingKey)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryInternal, "failed to sign JWT")
	}

	return signedString, nil
}

// Verify parses and validates a token string, returning the typed payload
// with transport metadata stripped. Bad signatures, expired tokens, and
// malformed tokens all fail with the same ErrInvalidToken.
func (ts *TokenServiceImpl) Verify(tokenString string) (Claims, error) {
	parserOptions := make([]jwt.ParserOption, 0, 1)
	if ts.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			ts.logger.Error("TokenService verify encountered unexpected signing method", "alg", t.Header["alg"])
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return ts.signingKey, nil
	}, parserOptions...)

	if err != nil {
		ts.logger.Debug("TokenService verify rejected token", "error", err)
		return nil, ErrInvalidToken
	}

	payload, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		ts.logger.Error("TokenService verify could not decode or validate claims")
		return nil, ErrInvalidToken
	}

	// The parser's audience option only matches a single value; check the
	// full configured set here so a token holding any of them passes.
	if len(ts.audience) > 0 {
		aud, err := payload.GetAudience()
		if err != nil || !audienceMatches(ts.audience, aud) {
			ts.logger.Debug("TokenService verify rejected token audience", "aud", aud)
			return nil, ErrInvalidToken
		}
	}

	claims, err := decodeClaims(map[string]any(payload))
	if err != nil {
		ts.logger.Error("TokenService verify failed to shape claims", "error", err)
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func audienceMatches(expected, got jwt.ClaimStrings) bool {
	for _, want := range expected {
		for _, have := range got {
			if have == want {
				return true
			}
		}
	}
	return false
}

func claimsToMap(claims Claims) (map[string]any, error) {
	raw, err := json.Marshal(claims)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to encode claims")
	}

	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "unable to flatten claims")
	}

	return payload, nil
}
