package auth

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/hashid/pkg/hashid"
)

// UserSession is what both registration and login hand back: the public
// user shape plus a signed token over it.
type UserSession struct {
	User  UserClaims `json:"user"`
	Token string     `json:"token"`
}

// UserDirectory looks up and creates end user records, keyed by email.
type UserDirectory struct {
	repo      RepositoryManager
	tokens    TokenService
	hasher    PasswordAuthenticator
	useHashid bool
	logger    Logger
}

// NewUserDirectory creates a UserDirectory.
func NewUserDirectory(repo RepositoryManager, tokens TokenService, hasher PasswordAuthenticator) *UserDirectory {
	return &UserDirectory{
		repo:   repo,
		tokens: tokens,
		hasher: hasher,
		logger: defLogger{},
	}
}

func (d *UserDirectory) WithLogger(logger Logger) *UserDirectory {
	if logger != nil {
		d.logger = logger
	}
	return d
}

// WithDeterministicIDs derives new user IDs from the email instead of
// generating random UUIDs.
func (d *UserDirectory) WithDeterministicIDs() *UserDirectory {
	d.useHashid = true
	return d
}

// Register creates a user for a previously unseen email and issues a token
// over the public shape. A known email fails with ErrUserExists.
func (d *UserDirectory) Register(ctx context.Context, email, name, password string) (*UserSession, error) {
	if _, err := d.repo.Users().GetByEmail(ctx, email); err == nil {
		return nil, ErrUserExists
	} else if !repository.IsRecordNotFound(err) {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}

	hash, err := d.hasher.HashPassword(password)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
	}
	if d.useHashid {
		if id, err := hashid.NewUUID(email); err == nil {
			user.ID = id
		}
	}

	created, err := d.repo.Users().Create(ctx, user)
	if err != nil {
		// The pre-check is advisory; a racing insert lands here.
		if IsUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "could not create user")
	}

	return d.sessionFor(created)
}

// Login verifies the email/password pair. Unknown emails and wrong
// passwords fail with the same error.
func (d *UserDirectory) Login(ctx context.Context, email, password string) (*UserSession, error) {
	user, err := d.repo.Users().GetByEmail(ctx, email)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrInvalidUserCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user")
	}

	if err := d.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidUserCredentials
	}

	return d.sessionFor(user)
}

func (d *UserDirectory) sessionFor(user *User) (*UserSession, error) {
	claims := user.Public()

	token, err := d.tokens.Issue(claims)
	if err != nil {
		d.logger.Error("user directory failed to issue token", "error", err)
		return nil, err
	}

	return &UserSession{User: claims, Token: token}, nil
}
