package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/query"
)

const enterpriseFrom = "enterprises e JOIN accounts a ON a.id = e.account_id"

var enterpriseColumns = append([]string{
	"e.id", "e.account_id", "e.registration_number", "e.name", "e.address", "e.ceo_name",
}, accountColumns...)

func scanEnterprise(row pgx.Row) (*domain.EnterpriseProfile, error) {
	var p domain.EnterpriseProfile
	var role string
	a := &p.Account
	err := row.Scan(
		&p.ID, &p.AccountID, &p.RegistrationNumber, &p.Name, &p.Address, &p.CEOName,
		&a.ID, &a.Email, &a.Password, &a.NickName, &a.OneLineIntroduce, &a.SocialLink,
		&a.Career, &a.Positions, &a.Image, &role, &a.Hits, &a.CreatedAt,
		&a.FavoriteCount, &a.Technologies,
	)
	if err != nil {
		return nil, translate(err)
	}
	a.Role = domain.Role(role)
	return &p, nil
}

type enterpriseRepo struct {
	db *pgxpool.Pool
}

func NewEnterpriseRepository(db *pgxpool.Pool) domain.EnterpriseRepository {
	return &enterpriseRepo{db: db}
}

func (r *enterpriseRepo) Create(ctx context.Context, account *domain.Account, enterprise *domain.Enterprise) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertAccount(ctx, tx, account); err != nil {
		return err
	}
	enterprise.ID = account.ID
	enterprise.AccountID = account.ID
	_, err = tx.Exec(ctx, `
		INSERT INTO enterprises (id, account_id, registration_number, name, address, ceo_name)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		enterprise.ID, enterprise.AccountID, enterprise.RegistrationNumber, enterprise.Name,
		enterprise.Address, enterprise.CEOName)
	if err != nil {
		return translate(err)
	}
	return tx.Commit(ctx)
}

func (r *enterpriseRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.EnterpriseProfile, error) {
	sql, args, err := psql.Select(enterpriseColumns...).
		From(enterpriseFrom).
		Where(sq.Eq{"e.account_id": accountID}).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanEnterprise(r.db.QueryRow(ctx, sql, args...))
}

func (r *enterpriseRepo) Update(ctx context.Context, account *domain.Account, enterprise *domain.Enterprise) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = affected(tx.Exec(ctx, `UPDATE accounts SET password = $2, nick_name = $3, image = $4 WHERE id = $1`,
		account.ID, account.Password, account.NickName, account.Image))
	if err != nil {
		return err
	}
	err = affected(tx.Exec(ctx, `
		UPDATE enterprises SET registration_number = $2, name = $3, address = $4, ceo_name = $5
		WHERE account_id = $1`,
		account.ID, enterprise.RegistrationNumber, enterprise.Name, enterprise.Address, enterprise.CEOName))
	if err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *enterpriseRepo) Filter(ctx context.Context, filter domain.EnterpriseFilter, page domain.Pageable) (*domain.Page[domain.EnterpriseProfile], error) {
	return query.Execute(ctx, enterpriseSource{db: r.db}, query.EnterpriseQuery(filter), page)
}

type enterpriseSource struct {
	db *pgxpool.Pool
}

func (s enterpriseSource) Count(ctx context.Context, where query.Predicate[domain.EnterpriseProfile]) (int64, error) {
	sql, args, err := psql.Select("COUNT(*)").From(enterpriseFrom).Where(where.Sqlizer()).ToSql()
	if err != nil {
		return 0, err
	}
	var total int64
	if err := s.db.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, translate(err)
	}
	return total, nil
}

func (s enterpriseSource) Find(ctx context.Context, where query.Predicate[domain.EnterpriseProfile], order query.Order[domain.EnterpriseProfile], limit, offset int) ([]domain.EnterpriseProfile, error) {
	sql, args, err := psql.Select(enterpriseColumns...).
		From(enterpriseFrom).
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
	defer rows.Close()

	out := make([]domain.EnterpriseProfile, 0)
	for rows.Next() {
		p, err := scanEnterprise(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
