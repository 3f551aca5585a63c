package memory

import (
	"context"
	"slices"
	"strings"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/query"
)

type accountRepo struct {
	s *Store
}

func NewAccountRepository(s *Store) domain.AccountRepository {
	return &accountRepo{s: s}
}

// view returns a detached copy of a with the favorite aggregate filled in. Caller holds mu.
func (s *Store) view(a domain.Account) domain.Account {
	a.Positions = slices.Clone(a.Positions)
	a.Technologies = slices.Clone(a.Technologies)
	a.FavoriteCount = int64(len(s.favorites[a.ID]))
	return a
}

func (s *Store) emailTakenLocked(email string) bool {
	for _, a := range s.accounts {
		if strings.EqualFold(a.Email, email) {
			return true
		}
	}
	return false
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTakenLocked(account.Email) {
		return domain.ErrDuplicate
	}
	account.ID = r.s.newID()
	row := *account
	row.FavoriteCount = 0
	r.s.accounts[account.ID] = r.s.view(row)
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	v := r.s.view(a)
	return &v, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if strings.EqualFold(a.Email, email) {
			v := r.s.view(a)
			return &v, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update overwrites the mutable profile fields. Email, role, hits and createdAt are kept.
func (r *accountRepo) Update(ctx context.Context, account *domain.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[account.ID]
	if !ok {
		return domain.ErrNotFound
	}
	a.Password = account.Password
	a.NickName = account.NickName
	a.OneLineIntroduce = account.OneLineIntroduce
	a.SocialLink = account.SocialLink
	a.Career = account.Career
	a.Positions = slices.Clone(account.Positions)
	a.Image = account.Image
	r.s.accounts[a.ID] = a
	return nil
}

func (r *accountRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return domain.ErrNotFound
	}
	r.s.deleteAccountLocked(id)
	return nil
}

func (r *accountRepo) IncrementHits(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Hits++
	r.s.accounts[id] = a
	return nil
}

func (r *accountRepo) ReplaceTechnologies(ctx context.Context, accountID int64, names []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[accountID]
	if !ok {
		return domain.ErrNotFound
	}
	tags := make([]string, 0, len(names))
	for _, n := range names {
		if !slices.Contains(tags, n) {
			tags = append(tags, n)
		}
	}
	a.Technologies = tags
	r.s.accounts[accountID] = a
	return nil
}

func (r *accountRepo) Filter(ctx context.Context, filter domain.AccountFilter, page domain.Pageable) (*domain.Page[domain.Account], error) {
	r.s.mu.RLock()
	snapshot := make([]domain.Account, 0, len(r.s.accounts))
	for _, a := range r.s.accounts {
		snapshot = append(snapshot, r.s.view(a))
	}
	r.s.mu.RUnlock()

	return query.Execute(ctx, query.Slice(snapshot), query.AccountQuery(filter), page)
}
