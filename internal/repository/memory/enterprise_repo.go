package memory

import (
	"context"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/query"
)

type enterpriseRepo struct {
	s *Store
}

func NewEnterpriseRepository(s *Store) domain.EnterpriseRepository {
	return &enterpriseRepo{s: s}
}

// Create stores both rows; the enterprise shares the account id.
func (r *enterpriseRepo) Create(ctx context.Context, account *domain.Account, enterprise *domain.Enterprise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.emailTakenLocked(account.Email) {
		return domain.ErrDuplicate
	}
	account.ID = r.s.newID()
	enterprise.ID = account.ID
	enterprise.AccountID = account.ID
	r.s.accounts[account.ID] = r.s.view(*account)
	r.s.enterprises[account.ID] = *enterprise
	return nil
}

func (r *enterpriseRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.EnterpriseProfile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.enterprises[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a, ok := r.s.accounts[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.EnterpriseProfile{Enterprise: e, Account: r.s.view(a)}, nil
}

func (r *enterpriseRepo) Update(ctx context.Context, account *domain.Account, enterprise *domain.Enterprise) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.accounts[account.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.enterprises[account.ID]; !ok {
		return domain.ErrNotFound
	}
	a.Password = account.Password
	a.NickName = account.NickName
	a.Image = account.Image
	r.s.accounts[a.ID] = a

	e := *enterprise
	e.ID = account.ID
	e.AccountID = account.ID
	r.s.enterprises[a.ID] = e
	return nil
}

func (r *enterpriseRepo) Filter(ctx context.Context, filter domain.EnterpriseFilter, page domain.Pageable) (*domain.Page[domain.EnterpriseProfile], error) {
	r.s.mu.RLock()
	snapshot := make([]domain.EnterpriseProfile, 0, len(r.s.enterprises))
	for id, e := range r.s.enterprises {
		if a, ok := r.s.accounts[id]; ok {
			snapshot = append(snapshot, domain.EnterpriseProfile{Enterprise: e, Account: r.s.view(a)})
		}
	}
	r.s.mu.RUnlock()

	return query.Execute(ctx, query.Slice(snapshot), query.EnterpriseQuery(filter), page)
}
