package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"pickme-backend/internal/domain"
)

type verificationRepo struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) domain.VerificationRepository {
	return &verificationRepo{db: db}
}

func (r *verificationRepo) Save(ctx context.Context, code *domain.VerificationCode) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO verification_codes (email, code, verified, expires_at, created_at)
		VALUES (lower($1), $2, $3, $4, $5)
		ON CONFLICT (email) DO UPDATE
		SET code = EXCLUDED.code, verified = EXCLUDED.verified,
		    expires_at = EXCLUDED.expires_at, created_at = EXCLUDED.created_at`,
		code.Email, code.Code, code.Verified, code.ExpiresAt, code.CreatedAt)
	return translate(err)
}

func (r *verificationRepo) GetByEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	var c domain.VerificationCode
	err := r.db.QueryRow(ctx, `
		SELECT email, code, verified, expires_at, created_at
		FROM verification_codes WHERE email = lower($1)`, email).
		Scan(&c.Email, &c.Code, &c.Verified, &c.ExpiresAt, &c.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *verificationRepo) MarkVerified(ctx context.Context, email string) error {
	return affected(r.db.Exec(ctx, `UPDATE verification_codes SET verified = TRUE WHERE email = lower($1)`, email))
}

func (r *verificationRepo) Delete(ctx context.Context, email string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM verification_codes WHERE email = lower($1)`, email)
	return translate(err)
}

func (r *verificationRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM verification_codes WHERE verified = FALSE AND expires_at <= $1`, now)
	if err != nil {
		return 0, translate(err)
	}
	return tag.RowsAffected(), nil
}
