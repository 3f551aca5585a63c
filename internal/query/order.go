package query

import "cmp"

// Order is one sort rule. Implementations must break ties on a unique key so that pages never
// overlap; Compare and SQL describe the same ordering.
type Order[T any] struct {
	Key     string
	SQL     []string
	Compare func(a, b T) int
}

// Desc orders by key descending, then by id descending.
func Desc[T any, K cmp.Ordered](key, column, idColumn string, get func(T) K, id func(T) int64) Order[T] {
	return Order[T]{
		Key: key,
		SQL: []string{column + " DESC", idColumn + " DESC"},
		Compare: func(a, b T) int {
			if c := cmp.Compare(get(b), get(a)); c != 0 {
				return c
			}
			return cmp.Compare(id(b), id(a))
		},
	}
}

// Asc orders by key ascending, then by id ascending.
func Asc[T any, K cmp.Ordered](key, column, idColumn string, get func(T) K, id func(T) int64) Order[T] {
	return Order[T]{
		Key: key,
		SQL: []string{column + " ASC", idColumn + " ASC"},
		Compare: func(a, b T) int {
			if c := cmp.Compare(get(a), get(b)); c != 0 {
				return c
			}
			return cmp.Compare(id(a), id(b))
		},
	}
}
