// Package query builds filter predicates and orderings once and evaluates them two ways: rendered
// to SQL for postgres, or matched in memory for the memory store.
package query

import (
	"strings"

	sq "github.com/Masterminds/squirrel"
)

// Clause is a single side-effect-free condition.
type Clause[T any] struct {
	Name  string
	SQL   sq.Sqlizer
	Match func(T) bool
}

// Predicate is the conjunction of its clauses. The zero value matches everything.
type Predicate[T any] struct {
	clauses []Clause[T]
}

func Where[T any](clauses ...Clause[T]) Predicate[T] {
	return Predicate[T]{clauses: append([]Clause[T](nil), clauses...)}
}

// And returns p with c appended. p itself is not modified.
func (p Predicate[T]) And(c Clause[T]) Predicate[T] {
	next := make([]Clause[T], len(p.clauses), len(p.clauses)+1)
	copy(next, p.clauses)
	return Predicate[T]{clauses: append(next, c)}
}

// AndIf appends the clause built by c only when value is not blank.
func (p Predicate[T]) AndIf(value string, c func(v string) Clause[T]) Predicate[T] {
	v := strings.TrimSpace(value)
	if v == "" {
		return p
	}
	return p.And(c(v))
}

func (p Predicate[T]) Match(item T) bool {
	for _, c := range p.clauses {
		if !c.Match(item) {
			return false
		}
	}
	return true
}

func (p Predicate[T]) Sqlizer() sq.Sqlizer {
	and := make(sq.And, 0, len(p.clauses))
	for _, c := range p.clauses {
		and = append(and, c.SQL)
	}
	return and
}

// Names lists the clause names in insertion order.
func (p Predicate[T]) Names() []string {
	names := make([]string, len(p.clauses))
	for i, c := range p.clauses {
		names[i] = c.Name
	}
	return names
}

func (p Predicate[T]) Len() int {
	return len(p.clauses)
}

// Equals matches column = value exactly.
func Equals[T any](name, column, value string, get func(T) string) Clause[T] {
	return Clause[T]{
		Name:  name,
		SQL:   sq.Eq{column: value},
		Match: func(item T) bool { return get(item) == value },
	}
}

// Contains matches when value occurs anywhere in column. Matching is case sensitive.
func Contains[T any](name, column, value string, get func(T) string) Clause[T] {
	return Clause[T]{
		Name:  name,
		SQL:   sq.Like{column: LikePattern(value)},
		Match: func(item T) bool { return strings.Contains(get(item), value) },
	}
}

// LikePattern wraps value in % after escaping LIKE metacharacters with the default '\' escape.
func LikePattern(value string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(value) + "%"
}
