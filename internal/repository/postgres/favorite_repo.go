package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"pickme-backend/internal/domain"
)

type favoriteRepo struct {
	db *pgxpool.Pool
}

func NewFavoriteRepository(db *pgxpool.Pool) domain.FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Toggle(ctx context.Context, accountID, favoredBy int64) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `DELETE FROM favorites WHERE account_id = $1 AND favored_by = $2`, accountID, favoredBy)
	if err != nil {
		return false, translate(err)
	}
	on := tag.RowsAffected() == 0
	if on {
		_, err = tx.Exec(ctx, `INSERT INTO favorites (account_id, favored_by) VALUES ($1, $2)`, accountID, favoredBy)
		if err != nil {
			return false, translate(err)
		}
	}
	return on, tx.Commit(ctx)
}

func (r *favoriteRepo) Exists(ctx context.Context, accountID, favoredBy int64) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE account_id = $1 AND favored_by = $2)`,
		accountID, favoredBy).Scan(&ok)
	return ok, translate(err)
}

func (r *favoriteRepo) ListFavoredBy(ctx context.Context, accountID int64) ([]domain.Account, error) {
	sql, args, err := psql.Select(accountColumns...).
		From("favorites fav").
		Join("accounts a ON a.id = fav.favored_by").
		Where(sq.Eq{"fav.account_id": accountID}).
		OrderBy("a.id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	return scanAccounts(rows)
}
