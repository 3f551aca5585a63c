package guard

import (
	"context"
	"errors"

	"pickme-backend/internal/domain"
)

// Exists reports whether lookup finds its record. domain.ErrNotFound means false; any other
// error is returned as is.
func Exists[T any](ctx context.Context, lookup func(ctx context.Context) (T, error)) (bool, error) {
	_, err := lookup(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsOwner is the single ownership rule for every resource type.
func IsOwner(ownerID, callerID int64) bool {
	return ownerID == callerID
}

// Ref loads a record at most once, so the checks of a chain and the operation after it share
// one lookup.
type Ref[T any] struct {
	load   func(ctx context.Context) (T, error)
	value  T
	err    error
	loaded bool
}

func Load[T any](load func(ctx context.Context) (T, error)) *Ref[T] {
	return &Ref[T]{load: load}
}

func (r *Ref[T]) Get(ctx context.Context) (T, error) {
	if !r.loaded {
		r.value, r.err = r.load(ctx)
		r.loaded = true
	}
	return r.value, r.err
}

// Value returns the loaded record. It is only meaningful after an Exists check on r passed.
func (r *Ref[T]) Value() T {
	return r.value
}
