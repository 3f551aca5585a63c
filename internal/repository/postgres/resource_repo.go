package postgres

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pickme-backend/internal/domain"
)

// Table describes how one sub-resource kind maps onto its table. Columns excludes id and
// account_id; Fields returns pointers to the matching struct fields in the same order.
type Table[T domain.Owned] struct {
	Name    string
	Columns []string
	New     func() T
	Fields  func(T) []any
}

var (
	ExperienceTable = Table[*domain.Experience]{
		Name:    "experiences",
		Columns: []string{"company_name", "position", "joined_at", "retired_at", "description"},
		New:     func() *domain.Experience { return &domain.Experience{} },
		Fields: func(e *domain.Experience) []any {
			return []any{&e.CompanyName, &e.Position, &e.JoinedAt, &e.RetiredAt, &e.Description}
		},
	}
	LicenseTable = Table[*domain.License]{
		Name:    "licenses",
		Columns: []string{"name", "institution", "issued_date", "description"},
		New:     func() *domain.License { return &domain.License{} },
		Fields: func(l *domain.License) []any {
			return []any{&l.Name, &l.Institution, &l.IssuedDate, &l.Description}
		},
	}
	PrizeTable = Table[*domain.Prize]{
		Name:    "prizes",
		Columns: []string{"competition", "name", "issued_date", "description"},
		New:     func() *domain.Prize { return &domain.Prize{} },
		Fields: func(p *domain.Prize) []any {
			return []any{&p.Competition, &p.Name, &p.IssuedDate, &p.Description}
		},
	}
	ProjectTable = Table[*domain.Project]{
		Name:    "projects",
		Columns: []string{"name", "role", "description", "started_at", "ended_at", "project_link"},
		New:     func() *domain.Project { return &domain.Project{} },
		Fields: func(p *domain.Project) []any {
			return []any{&p.Name, &p.Role, &p.Description, &p.StartedAt, &p.EndedAt, &p.ProjectLink}
		},
	}
	SelfInterviewTable = Table[*domain.SelfInterview]{
		Name:    "self_interviews",
		Columns: []string{"title", "content"},
		New:     func() *domain.SelfInterview { return &domain.SelfInterview{} },
		Fields: func(s *domain.SelfInterview) []any {
			return []any{&s.Title, &s.Content}
		},
	}
)

type resourceRepo[T domain.Owned] struct {
	db    *pgxpool.Pool
	table Table[T]
}

func NewResourceRepository[T domain.Owned](db *pgxpool.Pool, table Table[T]) domain.ResourceRepository[T] {
	return &resourceRepo[T]{db: db, table: table}
}

// values dereferences the field pointers for writes.
func values(fields []any) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = *(f.(*string))
	}
	return out
}

func (r *resourceRepo[T]) selectColumns() []string {
	return append([]string{"id", "account_id"}, r.table.Columns...)
}

func (r *resourceRepo[T]) scan(row pgx.Row) (T, error) {
	item := r.table.New()
	ref := item.Ref()
	dest := append([]any{&ref.ID, &ref.AccountID}, r.table.Fields(item)...)
	if err := row.Scan(dest...); err != nil {
		var zero T
		return zero, translate(err)
	}
	return item, nil
}

func (r *resourceRepo[T]) Create(ctx context.Context, item T) error {
	sql, args, err := psql.Insert(r.table.Name).
		Columns(append([]string{"account_id"}, r.table.Columns...)...).
		Values(append([]any{item.Ref().AccountID}, values(r.table.Fields(item))...)...).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return err
	}
	return translate(r.db.QueryRow(ctx, sql, args...).Scan(&item.Ref().ID))
}

func (r *resourceRepo[T]) GetByID(ctx context.Context, id int64) (T, error) {
	sql, args, err := psql.Select(r.selectColumns()...).From(r.table.Name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		var zero T
		return zero, err
	}
	return r.scan(r.db.QueryRow(ctx, sql, args...))
}

func (r *resourceRepo[T]) Update(ctx context.Context, item T) error {
	set := make(map[string]any, len(r.table.Columns))
	for i, v := range values(r.table.Fields(item)) {
		set[r.table.Columns[i]] = v
	}
	sql, args, err := psql.Update(r.table.Name).SetMap(set).Where(sq.Eq{"id": item.Ref().ID}).ToSql()
	if err != nil {
		return err
	}
	return affected(r.db.Exec(ctx, sql, args...))
}

func (r *resourceRepo[T]) Delete(ctx context.Context, id int64) error {
	sql, args, err := psql.Delete(r.table.Name).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return err
	}
	return affected(r.db.Exec(ctx, sql, args...))
}

func (r *resourceRepo[T]) ListByAccount(ctx context.Context, accountID int64) ([]T, error) {
	sql, args, err := psql.Select(r.selectColumns()...).
		From(r.table.Name).
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, translate(err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
