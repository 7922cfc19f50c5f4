// Package query implements the advanced-results layer shared by every list
// endpoint: a typed query-string grammar (filter, select, sort, page, limit)
// translated into SQL, executed against a table-backed source, and wrapped
// in a paginated response envelope.
package query

// Op is a comparison operator recognized by the filter grammar.
type Op string

const (
	OpEq  Op = "eq"
	OpGt  Op = "gt"
	OpGte Op = "gte"
	OpLt  Op = "lt"
	OpLte Op = "lte"
	OpIn  Op = "in"
)

// sqlToken rewrites a wire operator to its SQL form. OpIn is handled
// structurally in the builder and has no single token.
var sqlToken = map[Op]string{
	OpEq:  "=",
	OpGt:  ">",
	OpGte: ">=",
	OpLt:  "<",
	OpLte: "<=",
}

// Filter is one parsed filter clause: column op value(s).
type Filter struct {
	Field  string // wire name, kept for error messages
	Column string
	Op     Op
	Value  any   // typed scalar for comparison ops
	Values []any // typed list for OpIn
	Array  bool  // column is a postgres array; OpIn becomes an overlap test
}

// SortKey is one ordering term.
type SortKey struct {
	Column string
	Desc   bool
}

// Spec is the parsed, immutable representation of a list request.
// Built once per request by Parse and consumed once by Source.Run.
type Spec struct {
	Filters  []Filter
	Sort     []SortKey
	Select   []string // column names; empty means all schema columns
	Page     int
	Limit    int
	Populate string
}

// Skip returns the row offset implied by page and limit.
func (s *Spec) Skip() int {
	return (s.Page - 1) * s.Limit
}

// Field describes one queryable field of a schema.
type Field struct {
	Column string
	Array  bool
}

// Schema is the allow-list of queryable fields for one resource, with the
// wire-name to column mapping. Unknown fields fail closed at parse time.
type Schema struct {
	Table       string
	Fields      map[string]Field
	DefaultSort []SortKey

	names map[string]string // column -> wire name, built lazily
}

// WireName returns the wire name for a column, falling back to the column
// itself for columns outside the schema (e.g. primary keys).
func (s *Schema) WireName(column string) string {
	if s.names == nil {
		s.names = make(map[string]string, len(s.Fields))
		for name, f := range s.Fields {
			s.names[f.Column] = name
		}
	}
	if n, ok := s.names[column]; ok {
		return n
	}
	return column
}

