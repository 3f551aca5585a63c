package memory

import (
	"context"
	"strings"
	"time"

	"pickme-backend/internal/domain"
)

type verificationRepo struct {
	s *Store
}

func NewVerificationRepository(s *Store) domain.VerificationRepository {
	return &verificationRepo{s: s}
}

func key(email string) string {
	return strings.ToLower(email)
}

func (r *verificationRepo) Save(ctx context.Context, code *domain.VerificationCode) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.codes[key(code.Email)] = *code
	return nil
}

func (r *verificationRepo) GetByEmail(ctx context.Context, email string) (*domain.VerificationCode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.codes[key(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *verificationRepo) MarkVerified(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.codes[key(email)]
	if !ok {
		return domain.ErrNotFound
	}
	c.Verified = true
	r.s.codes[key(email)] = c
	return nil
}

func (r *verificationRepo) Delete(ctx context.Context, email string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.codes, key(email))
	return nil
}

// PurgeExpired drops unverified codes whose deadline has passed.
func (r *verificationRepo) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for k, c := range r.s.codes {
		if !c.Verified && !now.Before(c.ExpiresAt) {
			delete(r.s.codes, k)
			n++
		}
	}
	return n, nil
}
