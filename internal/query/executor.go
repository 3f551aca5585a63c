package query

import (
	"context"
	"slices"
	"time"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/metrics"
)

// Query is a predicate and an ordering over one resource.
type Query[T any] struct {
	Resource string
	Where    Predicate[T]
	OrderBy  Order[T]
}

// Source is a store that can evaluate a Query.
type Source[T any] interface {
	Count(ctx context.Context, where Predicate[T]) (int64, error)
	Find(ctx context.Context, where Predicate[T], order Order[T], limit, offset int) ([]T, error)
}

// Execute returns one page of q plus the total number of matches. Size below 1 is treated as 1
// and a negative page as 0. An offset past the end yields empty content with the real total.
func Execute[T any](ctx context.Context, src Source[T], q Query[T], page domain.Pageable) (*domain.Page[T], error) {
	start := time.Now()
	defer func() { metrics.RecordFilterQuery(q.Resource, time.Since(start)) }()

	if page.Size < 1 {
		page.Size = 1
	}
	if page.Page < 0 {
		page.Page = 0
	}

	total, err := src.Count(ctx, q.Where)
	if err != nil {
		return nil, err
	}

	result := &domain.Page[T]{
		Content: []T{},
		Total:   total,
		Page:    page.Page,
		Size:    page.Size,
	}
	// compare by division first so huge page numbers cannot overflow the offset
	if int64(page.Page) > total/int64(page.Size) || int64(page.Offset()) >= total {
		return result, nil
	}

	items, err := src.Find(ctx, q.Where, q.OrderBy, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}
	if items != nil {
		result.Content = items
	}
	return result, nil
}

// Slice evaluates queries against an in-memory snapshot.
func Slice[T any](items []T) Source[T] {
	return sliceSource[T](items)
}

type sliceSource[T any] []T

func (s sliceSource[T]) Count(_ context.Context, where Predicate[T]) (int64, error) {
	var n int64
	for _, item := range s {
		if where.Match(item) {
			n++
		}
	}
	return n, nil
}

func (s sliceSource[T]) Find(_ context.Context, where Predicate[T], order Order[T], limit, offset int) ([]T, error) {
	matched := make([]T, 0, len(s))
	for _, item := range s {
		if where.Match(item) {
			matched = append(matched, item)
		}
	}
	if order.Compare != nil {
		slices.SortStableFunc(matched, order.Compare)
	}
	if offset >= len(matched) {
		return []T{}, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], nil
}
