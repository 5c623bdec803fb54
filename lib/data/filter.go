package data

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// Filter accumulates typed predicates and renders them as one parameterized
// WHERE clause, AND-combined in insertion order. It replaces the ad hoc
// string concatenation the listing and report queries would otherwise need.
type Filter struct {
	clauses []string
	args    []interface{}
}

// Equals adds column = value.
func (f *Filter) Equals(column string, value interface{}) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s = $%d", column, f.next()))
	f.args = append(f.args, value)
	return f
}

// AnyOf adds column = ANY(values).
func (f *Filter) AnyOf(column string, values []string) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s = ANY($%d)", column, f.next()))
	f.args = append(f.args, pq.Array(values))
	return f
}

// LikePrefix adds column LIKE prefix || '%'.
func (f *Filter) LikePrefix(column, prefix string) *Filter {
	f.clauses = append(f.clauses, fmt.Sprintf("%s LIKE $%d", column, f.next()))
	f.args = append(f.args, prefix+"%")
	return f
}

// Between adds column BETWEEN low AND high.
func (f *Filter) Between(column string, low, high interface{}) *Filter {
	n := f.next()
	f.clauses = append(f.clauses, fmt.Sprintf("%s BETWEEN $%d AND $%d", column, n, n+1))
	f.args = append(f.args, low, high)
	return f
}

// Empty reports whether no predicate was added.
func (f *Filter) Empty() bool {
	return len(f.clauses) == 0
}

// Where renders " WHERE ..." or the empty string when no predicates exist.
func (f *Filter) Where() string {
	if f.Empty() {
		return ""
	}
	return " WHERE " + strings.Join(f.clauses, " AND ")
}

// Args returns the positional arguments in placeholder order.
func (f *Filter) Args() []interface{} {
	return f.args
}

func (f *Filter) next() int {
	return len(f.args) + 1
}
