package favorites

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

type Favorites interface {
	Create(ctx context.Context, record *Favorite) (*Favorite, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Favorite) (*Favorite, error)
	ListByUser(ctx context.Context, userID int64) ([]*Favorite, error)
}

type favoritesRepo struct {
	db *bun.DB
}

var _ Favorites = (*favoritesRepo)(nil)

func NewFavoritesRepository(db *bun.DB) Favorites {
	return &favoritesRepo{db: db}
}

func (a *favoritesRepo) Create(ctx context.Context, record *Favorite) (*Favorite, error) {
	return a.CreateTx(ctx, a.db, record)
}

func (a *favoritesRepo) CreateTx(ctx context.Context, tx bun.IDB, record *Favorite) (*Favorite, error) {
	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create favorite")
	}
	return record, nil
}

func (a *favoritesRepo) ListByUser(ctx context.Context, userID int64) ([]*Favorite, error) {
	var records []*Favorite

	err := a.db.NewSelect().
		Model(&records).
		Where("?TableAlias.user_id = ?", userID).
		Order("id ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list favorites")
	}

	return records, nil
}
