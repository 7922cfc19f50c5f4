package query

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildSelect renders the Spec into a SQL statement with positional args,
// applying filter, select, sort, skip and limit in that order.
func BuildSelect(sch *Schema, spec *Spec) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if len(spec.Select) == 0 {
		sb.WriteString("*")
	} else {
		sb.WriteString(strings.Join(spec.Select, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(sch.Table)

	where, args := buildWhere(spec.Filters)
	sb.WriteString(where)

	if len(spec.Sort) > 0 {
		sb.WriteString(" ORDER BY ")
		terms := make([]string, 0, len(spec.Sort))
		for _, k := range spec.Sort {
			dir := " ASC"
			if k.Desc {
				dir = " DESC"
			}
			terms = append(terms, k.Column+dir)
		}
		sb.WriteString(strings.Join(terms, ", "))
	}

	sb.WriteString(" LIMIT ")
	sb.WriteString(strconv.Itoa(spec.Limit))
	sb.WriteString(" OFFSET ")
	sb.WriteString(strconv.Itoa(spec.Skip()))

	return sb.String(), args
}

// BuildCount renders the count statement for the same filters, ignoring
// projection, ordering and paging.
func BuildCount(sch *Schema, spec *Spec) (string, []any) {
	where, args := buildWhere(spec.Filters)
	return "SELECT count(*) FROM " + sch.Table + where, args
}

func buildWhere(filters []Filter) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}
	clauses := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	for _, f := range filters {
		switch {
		case f.Op == OpIn && f.Array:
			args = append(args, stringArg(f.Values))
			clauses = append(clauses, fmt.Sprintf("%s && $%d", f.Column, len(args)))
		case f.Op == OpIn:
			args = append(args, inArg(f.Values))
			clauses = append(clauses, fmt.Sprintf("%s = ANY($%d)", f.Column, len(args)))
		default:
			args = append(args, f.Value)
			clauses = append(clauses, fmt.Sprintf("%s %s $%d", f.Column, sqlToken[f.Op], len(args)))
		}
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// inArg collapses a typed value list into a homogeneous slice so the driver
// can encode it as a single array parameter.
func inArg(values []any) any {
	ints := make([]int64, 0, len(values))
	for _, v := range values {
		i, ok := v.(int64)
		if !ok {
			return stringArg(values)
		}
		ints = append(ints, i)
	}
	return ints
}

func stringArg(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprintf("%v", v))
	}
	return out
}
