package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Operation names, preserved from the message transport this service
// answers on.
const (
	OpRegisterUser   = "auth.register.user"
	OpLoginUser      = "auth.login.user"
	OpRegisterTenant = "auth.register.subscription"
	OpLoginAdmin     = "auth.login.airline"
	OpVerifyToken    = "auth.verify.user"
)

// Operations lists every operation the orchestrator answers.
func Operations() []string {
	return []string{
		OpRegisterUser,
		OpLoginUser,
		OpRegisterTenant,
		OpLoginAdmin,
		OpVerifyToken,
	}
}

// VerifiedToken is the verify result: the recovered payload plus a freshly
// signed token over the same payload.
type VerifiedToken struct {
	User  Claims `json:"user"`
	Token string `json:"token"`
}

// OperationError is the only failure shape callers ever see.
type OperationError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *OperationError) Error() string {
	return e.Message
}

// AsOperationError flattens any internal failure into the external shape.
// Invalid tokens map to 401; everything else, including unexpected internal
// errors, becomes a 400 carrying the underlying message.
func AsOperationError(err error) *OperationError {
	if err == nil {
		return nil
	}

	if opErr, ok := err.(*OperationError); ok {
		return opErr
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		if richErr.TextCode == "INVALID_TOKEN" {
			return &OperationError{Status: 401, Message: richErr.Message}
		}
		return &OperationError{Status: 400, Message: richErr.Message}
	}

	return &OperationError{Status: 400, Message: err.Error()}
}

// Orchestrator is the single entry point the external dispatcher invokes;
// it composes the directory, the registry, and the token service into the
// five named operations.
type Orchestrator struct {
	users   *UserDirectory
	tenants *TenantRegistry
	tokens  TokenService
	logger  Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(users *UserDirectory, tenants *TenantRegistry, tokens TokenService) *Orchestrator {
	return &Orchestrator{
		users:   users,
		tenants: tenants,
		tokens:  tokens,
		logger:  defLogger{},
	}
}

func (o *Orchestrator) WithLogger(logger Logger) *Orchestrator {
	if logger != nil {
		o.logger = logger
	}
	return o
}

// RegisterUser handles auth.register.user.
func (o *Orchestrator) RegisterUser(ctx context.Context, email, name, password string) (*UserSession, error) {
	session, err := o.users.Register(ctx, email, name, password)
	if err != nil {
		return nil, AsOperationError(err)
	}
	return session, nil
}

// LoginUser handles auth.login.user.
func (o *Orchestrator) LoginUser(ctx context.Context, email, password string) (*UserSession, error) {
	session, err := o.users.Login(ctx, email, password)
	if err != nil {
		return nil, AsOperationError(err)
	}
	return session, nil
}

// RegisterTenant handles auth.register.subscription.
func (o *Orchestrator) RegisterTenant(ctx context.Context, reg TenantRegistration) (*TenantSession, error) {
	session, err := o.tenants.Register(ctx, reg)
	if err != nil {
		return nil, AsOperationError(err)
	}
	return session, nil
}

// LoginAdmin handles auth.login.airline.
func (o *Orchestrator) LoginAdmin(ctx context.Context, email, password string) (*AdminSession, error) {
	session, err := o.tenants.Login(ctx, email, password)
	if err != nil {
		return nil, AsOperationError(err)
	}
	return session, nil
}

// VerifyToken handles auth.verify.user: it validates the token and hands
// back the recovered payload together with a fresh token over it.
func (o *Orchestrator) VerifyToken(_ context.Context, tokenString string) (*VerifiedToken, error) {
	claims, err := o.tokens.Verify(tokenString)
	if err != nil {
		return nil, AsOperationError(err)
	}

	refreshed, err := o.tokens.Issue(claims)
	if err != nil {
		o.logger.Error("orchestrator failed to refresh token", "error", err)
		return nil, AsOperationError(ErrInvalidToken)
	}

	return &VerifiedToken{User: claims, Token: refreshed}, nil
}
