package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/query"
)

// accountColumns selects an account aliased a together with its derived favorite count and
// technology tags.
var accountColumns = []string{
	"a.id", "a.email", "a.password", "a.nick_name", "a.one_line_introduce", "a.social_link",
	"a.career", "a.positions", "a.image", "a.user_role", "a.hits", "a.created_at",
	"(SELECT COUNT(*) FROM favorites f WHERE f.account_id = a.id) AS favorite_count",
	`COALESCE((SELECT array_agg(t.name ORDER BY t.name) FROM account_technologies atl
		JOIN technologies t ON t.id = atl.technology_id WHERE atl.account_id = a.id), '{}') AS technologies`,
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	var role string
	err := row.Scan(
		&a.ID, &a.Email, &a.Password, &a.NickName, &a.OneLineIntroduce, &a.SocialLink,
		&a.Career, &a.Positions, &a.Image, &role, &a.Hits, &a.CreatedAt,
		&a.FavoriteCount, &a.Technologies,
	)
	if err != nil {
		return nil, translate(err)
	}
	a.Role = domain.Role(role)
	return &a, nil
}

func scanAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	accounts := make([]domain.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *a)
	}
	return accounts, rows.Err()
}

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

func insertAccount(ctx context.Context, q interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}, a *domain.Account) error {
	if a.Positions == nil {
		a.Positions = []string{}
	}
	sql, args, err := psql.Insert("accounts").
		Columns("email", "password", "nick_name", "one_line_introduce", "social_link", "career",
			"positions", "image", "user_role", "hits", "created_at").
		Values(a.Email, a.Password, a.NickName, a.OneLineIntroduce, a.SocialLink, a.Career,
			a.Positions, a.Image, string(a.Role), a.Hits, a.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return translate(q.QueryRow(ctx, sql, args...).Scan(&a.ID))
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	return insertAccount(ctx, r.db, account)
}

func (r *accountRepo) getOne(ctx context.Context, where sq.Sqlizer) (*domain.Account, error) {
	sql, args, err := psql.Select(accountColumns...).From("accounts a").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanAccount(r.db.QueryRow(ctx, sql, args...))
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.getOne(ctx, sq.Eq{"a.id": id})
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.getOne(ctx, sq.Expr("lower(a.email) = lower(?)", email))
}

func (r *accountRepo) Update(ctx context.Context, account *domain.Account) error {
	positions := account.Positions
	if positions == nil {
		positions = []string{}
	}
	sql, args, err := psql.Update("accounts").
		SetMap(map[string]any{
			"password":           account.Password,
			"nick_name":          account.NickName,
			"one_line_introduce": account.OneLineIntroduce,
			"social_link":        account.SocialLink,
			"career":             account.Career,
			"positions":          positions,
			"image":              account.Image,
		}).
		Where(sq.Eq{"id": account.ID}).
		ToSql()
	if err != nil {
		return err
	}
	return affected(r.db.Exec(ctx, sql, args...))
}

// Delete removes the account; sub-resources, favorites, technology links and the enterprise row
// go with it through ON DELETE CASCADE.
func (r *accountRepo) Delete(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id))
}

func (r *accountRepo) IncrementHits(ctx context.Context, id int64) error {
	return affected(r.db.Exec(ctx, `UPDATE accounts SET hits = hits + 1 WHERE id = $1`, id))
}

func (r *accountRepo) ReplaceTechnologies(ctx context.Context, accountID int64, names []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM account_technologies WHERE account_id = $1`, accountID); err != nil {
		return translate(err)
	}
	for _, name := range names {
		var techID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO technologies (name) VALUES ($1)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id`, name).Scan(&techID)
		if err != nil {
			return translate(err)
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO account_technologies (account_id, technology_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, accountID, techID)
		if err != nil {
			return translate(err)
		}
	}
	return tx.Commit(ctx)
}

func (r *accountRepo) Filter(ctx context.Context, filter domain.AccountFilter, page domain.Pageable) (*domain.Page[domain.Account], error) {
	return query.Execute(ctx, accountSource{db: r.db}, query.AccountQuery(filter), page)
}

// accountSource evaluates account queries in SQL.
type accountSource struct {
	db *pgxpool.Pool
}

func (s accountSource) Count(ctx context.Context, where query.Predicate[domain.Account]) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From("accounts a").Where(where.Sqlizer()).ToSql()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, translate(err)
	}
	return total, nil
}

func (s accountSource) Find(ctx context.Context, where query.Predicate[domain.Account], order query.Order[domain.Account], limit, offset int) ([]domain.Account, error) {
	sql, args, err := psql.Select(accountColumns...).
		From("accounts a").
		Where(where.Sqlizer()).
		OrderBy(order.SQL...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	return scanAccounts(rows)
}
