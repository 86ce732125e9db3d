package favorites

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// UserProvider resolves and verifies identities against a UserStore. It
// only ever reads from the store.
type UserProvider struct {
	store  UserStore
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore) *UserProvider {
	return &UserProvider{
		store:  store,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return
// the user record. An unknown email and a wrong password produce the
// identical ErrInvalidCredentials result.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (*User, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if goerrors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// FindIdentityByEmail looks up a user without verifying credentials
func (u *UserProvider) FindIdentityByEmail(ctx context.Context, email string) (*User, error) {
	return u.store.GetByEmail(ctx, email)
}

var _ IdentityProvider = (*UserProvider)(nil)
