package memory

import (
	"cmp"
	"context"
	"slices"

	"pickme-backend/internal/domain"
)

type favoriteRepo struct {
	s *Store
}

func NewFavoriteRepository(s *Store) domain.FavoriteRepository {
	return &favoriteRepo{s: s}
}

func (r *favoriteRepo) Toggle(ctx context.Context, accountID, favoredBy int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[accountID]; !ok {
		return false, domain.ErrNotFound
	}
	set, ok := r.s.favorites[accountID]
	if !ok {
		set = make(map[int64]struct{})
		r.s.favorites[accountID] = set
	}
	if _, on := set[favoredBy]; on {
		delete(set, favoredBy)
		return false, nil
	}
	set[favoredBy] = struct{}{}
	return true, nil
}

func (r *favoriteRepo) Exists(ctx context.Context, accountID, favoredBy int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	_, ok := r.s.favorites[accountID][favoredBy]
	return ok, nil
}

func (r *favoriteRepo) ListFavoredBy(ctx context.Context, accountID int64) ([]domain.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Account, 0, len(r.s.favorites[accountID]))
	for id := range r.s.favorites[accountID] {
		if a, ok := r.s.accounts[id]; ok {
			out = append(out, r.s.view(a))
		}
	}
	slices.SortFunc(out, func(a, b domain.Account) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}
