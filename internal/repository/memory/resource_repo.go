package memory

import (
	"cmp"
	"context"
	"slices"

	"pickme-backend/internal/domain"
)

// resourceRepo stores values of E and hands out detached *E copies.
type resourceRepo[E any, T interface {
	*E
	domain.Owned
}] struct {
	s    *Store
	rows map[int64]E
}

// NewResourceRepository returns a repository for one sub-resource kind whose rows are removed
// together with their owning account.
func NewResourceRepository[E any, T interface {
	*E
	domain.Owned
}](s *Store) domain.ResourceRepository[T] {
	r := &resourceRepo[E, T]{s: s, rows: make(map[int64]E)}
	s.mu.Lock()
	s.onAccountDelete = append(s.onAccountDelete, r.deleteByAccountLocked)
	s.mu.Unlock()
	return r
}

func (r *resourceRepo[E, T]) deleteByAccountLocked(accountID int64) {
	for id, row := range r.rows {
		if T(&row).Ref().AccountID == accountID {
			delete(r.rows, id)
		}
	}
}

func (r *resourceRepo[E, T]) Create(ctx context.Context, item T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.accounts[item.Ref().AccountID]; !ok {
		return domain.ErrNotFound
	}
	item.Ref().ID = r.s.newID()
	r.rows[item.Ref().ID] = *item
	return nil
}

func (r *resourceRepo[E, T]) GetByID(ctx context.Context, id int64) (T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return T(&row), nil
}

func (r *resourceRepo[E, T]) Update(ctx context.Context, item T) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.rows[item.Ref().ID]; !ok {
		return domain.ErrNotFound
	}
	r.rows[item.Ref().ID] = *item
	return nil
}

func (r *resourceRepo[E, T]) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *resourceRepo[E, T]) ListByAccount(ctx context.Context, accountID int64) ([]T, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]T, 0)
	for _, row := range r.rows {
		if T(&row).Ref().AccountID == accountID {
			out = append(out, T(&row))
		}
	}
	slices.SortFunc(out, func(a, b T) int { return cmp.Compare(a.Ref().ID, b.Ref().ID) })
	return out, nil
}
