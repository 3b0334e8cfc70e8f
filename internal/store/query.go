package store

import (
	"strconv"
	"strings"
)

// queryStage is one named fragment of a conditionally assembled
// statement. Stages use ? placeholders; Build renumbers them.
type queryStage struct {
	name   string
	clause string
	args   []any
}

// queryBuilder assembles a base SELECT and an ordered list of named
// condition stages into a single statement. It replaces inline
// conditional string concatenation: each stage is added only when the
// request needs it, and the stage list can be inspected in tests.
type queryBuilder struct {
	base   string
	stages []queryStage
	suffix []string
}

func newQueryBuilder(base string) *queryBuilder {
	return &queryBuilder{base: base}
}

// Stage appends a named WHERE condition. Conditions are joined with
// AND in the order they were added.
func (b *queryBuilder) Stage(name, clause string, args ...any) *queryBuilder {
	b.stages = append(b.stages, queryStage{name: name, clause: clause, args: args})
	return b
}

// Suffix appends a trailing clause (GROUP BY, ORDER BY, LIMIT) after
// the conditions.
func (b *queryBuilder) Suffix(clause string) *queryBuilder {
	b.suffix = append(b.suffix, clause)
	return b
}

// StageNames reports the ordered names of the added stages.
func (b *queryBuilder) StageNames() []string {
	names := make([]string, len(b.stages))
	for i, st := range b.stages {
		names[i] = st.name
	}
	return names
}

// Build renders the statement with $1..$n placeholders and the
// matching argument list.
func (b *queryBuilder) Build() (string, []any) {
	var sb strings.Builder
	sb.WriteString(b.base)

	var args []any
	for i, st := range b.stages {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		sb.WriteString(st.clause)
		args = append(args, st.args...)
	}
	for _, clause := range b.suffix {
		sb.WriteString(" ")
		sb.WriteString(clause)
	}

	return numberPlaceholders(sb.String()), args
}

func numberPlaceholders(query string) string {
	var sb strings.Builder
	sb.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
