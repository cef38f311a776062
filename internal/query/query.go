// Package query implements the predicate compiler translating sparse filter
// structs into composable SQL conditions with positional pgx placeholders.
package query

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// clause is one boolean constraint. expr uses ? placeholders that are
// renumbered to $n when the composite condition is rendered.
type clause struct {
	key  string
	expr string
	args []any
}

// Condition is an immutable composite of AND-ed clauses. The zero value
// matches every row.
type Condition struct {
	clauses []clause
}

// IsEmpty reports whether the condition constrains anything.
func (c Condition) IsEmpty() bool {
	return len(c.clauses) == 0
}

// SQL renders the condition as a WHERE fragment, numbering placeholders
// from start. An empty condition renders as TRUE.
func (c Condition) SQL(start int) (string, []any) {
	if len(c.clauses) == 0 {
		return "TRUE", nil
	}

	var sb strings.Builder
	var args []any
	n := start
	for i, cl := range c.clauses {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteByte('(')
		for _, ch := range cl.expr {
			if ch == '?' {
				fmt.Fprintf(&sb, "$%d", n)
				n++
				continue
			}
			sb.WriteRune(ch)
		}
		sb.WriteByte(')')
		args = append(args, cl.args...)
	}
	return sb.String(), args
}

// Builder accumulates optional clauses. Each Build starts from the clauses
// added to this builder only; builders are cheap and must not be shared
// between requests.
type Builder struct {
	clauses []clause
}

// NewBuilder returns an empty accumulator.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(key, expr string, args ...any) *Builder {
	b.clauses = append(b.clauses, clause{key: key, expr: expr, args: args})
	return b
}

// Eq adds an exact-match constraint.
func (b *Builder) Eq(column string, value any) *Builder {
	return b.add(column+":eq", column+" = ?", value)
}

// Contains adds a case-insensitive substring constraint.
func (b *Builder) Contains(column, value string) *Builder {
	return b.add(column+":like", column+" ILIKE ?", likePattern(value))
}

// Gte adds an inclusive lower bound.
func (b *Builder) Gte(column string, value any) *Builder {
	return b.add(column+":gte", column+" >= ?", value)
}

// Lte adds an inclusive upper bound.
func (b *Builder) Lte(column string, value any) *Builder {
	return b.add(column+":lte", column+" <= ?", value)
}

// In constrains the column to a set of values.
func (b *Builder) In(column string, values []string) *Builder {
	return b.add(column+":in", column+" = ANY(?)", values)
}

// Before adds an exclusive upper time bound.
func (b *Builder) Before(column string, t time.Time) *Builder {
	return b.add(column+":before", column+" < ?", t)
}

// After adds an inclusive lower time bound.
func (b *Builder) After(column string, t time.Time) *Builder {
	return b.add(column+":after", column+" >= ?", t)
}

// Raw adds a hand-written clause. key must be unique per expression so that
// Build stays order-independent.
func (b *Builder) Raw(key, expr string, args ...any) *Builder {
	return b.add(key, expr, args...)
}

// Build produces the composite condition. Clauses are sorted by key, so any
// call order over the same constraints yields an identical condition.
func (b *Builder) Build() Condition {
	out := make([]clause, len(b.clauses))
	copy(out, b.clauses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].key < out[j].key })
	return Condition{clauses: out}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// Page bounds a query result window.
type Page struct {
	Limit  int
	Offset int
}

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// Normalize applies the default limit, the limit cap, and a non-negative
// offset.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = defaultPageLimit
	}
	if p.Limit > maxPageLimit {
		p.Limit = maxPageLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Paged is one page of results plus the unpaged total.
type Paged[T any] struct {
	Items  []T   `json:"items"`
	Total  int64 `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
}
