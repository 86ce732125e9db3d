package favorites

import (
	"context"
	"database/sql"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

var updatePasswordHashSQL = `UPDATE "users" AS "usr"
SET
	"password_hash" = ?,
	"updated_at" = ?
WHERE
	"usr"."id" = ?;`

type Users interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
	RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error)
	UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error
	UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error
	Delete(ctx context.Context, user *User) error
	DeleteTx(ctx context.Context, tx bun.IDB, user *User) error
}

type users struct {
	db *bun.DB
}

var _ Users = (*users)(nil)
var _ UserStore = (*users)(nil)

func NewUsersRepository(db *bun.DB) Users {
	return &users{db: db}
}

func (a *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return a.GetByEmailTx(ctx, a.db, email)
}

func (a *users) GetByEmailTx(ctx context.Context, tx bun.IDB, email string) (*User, error) {
	record := &User{}

	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if goerrors.Is(err, sql.ErrNoRows) {
			return nil, ErrIdentityNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to look up user by email")
	}

	return record, nil
}

// Register inserts a new user. Email uniqueness is enforced both by a
// pre-check, so the common case reports ErrDuplicateEmail without a
// constraint violation, and by the unique index for concurrent inserts.
func (a *users) Register(ctx context.Context, user *User) (*User, error) {
	return a.RegisterTx(ctx, a.db, user)
}

func (a *users) RegisterTx(ctx context.Context, tx bun.IDB, user *User) (*User, error) {
	if _, err := a.GetByEmailTx(ctx, tx, user.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !goerrors.IsNotFound(err) {
		return nil, err
	}

	if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to register user")
	}

	return user, nil
}

func (a *users) UpdatePasswordHash(ctx context.Context, id int64, passwordHash string) error {
	return a.UpdatePasswordHashTx(ctx, a.db, id, passwordHash)
}

func (a *users) UpdatePasswordHashTx(ctx context.Context, tx bun.IDB, id int64, passwordHash string) error {
	res, err := tx.NewRaw(updatePasswordHashSQL, passwordHash, time.Now(), id).Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update password hash")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrIdentityNotFound
	}

	return nil
}

func (a *users) Delete(ctx context.Context, user *User) error {
	return a.DeleteTx(ctx, a.db, user)
}

func (a *users) DeleteTx(ctx context.Context, tx bun.IDB, user *User) error {
	res, err := tx.NewDelete().Model(user).WherePK().Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrIdentityNotFound
	}

	return nil
}
