package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// Reserved keywords are stripped from the filter candidate set before
// filter parsing; they are never treated as field filters.
var reserved = map[string]struct{}{
	"select":   {},
	"sort":     {},
	"page":     {},
	"limit":    {},
	"populate": {},
}

var validOps = map[Op]struct{}{
	OpGt:  {},
	OpGte: {},
	OpLt:  {},
	OpLte: {},
	OpIn:  {},
}

// Options carries per-route parse configuration.
type Options struct {
	// MaxLimit caps the page size. Zero means no cap.
	MaxLimit int
	// Populate is the route's default populate directive; the request may
	// not override it with an unregistered one (Source.Run rejects those).
	Populate string
}

// Parse translates raw query parameters into a Spec validated against the
// schema. Unknown fields and unknown operators are rejected rather than
// passed through to the data source. Parse performs no I/O.
func Parse(values url.Values, sch *Schema, opts Options) (*Spec, error) {
	spec := &Spec{
		Page:     DefaultPage,
		Limit:    DefaultLimit,
		Populate: opts.Populate,
	}

	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		spec.Page = p
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		spec.Limit = l
	}
	if opts.MaxLimit > 0 && spec.Limit > opts.MaxLimit {
		spec.Limit = opts.MaxLimit
	}

	if sel := values.Get("select"); sel != "" {
		for _, name := range strings.Split(sel, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			f, ok := sch.Fields[name]
			if !ok {
				return nil, domain.ValidationError{Field: name, Msg: "unknown field in select"}
			}
			spec.Select = append(spec.Select, f.Column)
		}
	}

	if srt := values.Get("sort"); srt != "" {
		for _, name := range strings.Split(srt, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			desc := strings.HasPrefix(name, "-")
			name = strings.TrimPrefix(name, "-")
			f, ok := sch.Fields[name]
			if !ok {
				return nil, domain.ValidationError{Field: name, Msg: "unknown field in sort"}
			}
			spec.Sort = append(spec.Sort, SortKey{Column: f.Column, Desc: desc})
		}
	}
	if len(spec.Sort) == 0 {
		spec.Sort = sch.DefaultSort
	}

	if p := values.Get("populate"); p != "" {
		spec.Populate = p
	}

	for key, vals := range values {
		if _, ok := reserved[key]; ok {
			continue
		}
		field, op, err := splitKey(key)
		if err != nil {
			return nil, err
		}
		f, ok := sch.Fields[field]
		if !ok {
			return nil, domain.ValidationError{Field: field, Msg: "unknown filter field"}
		}
		for _, raw := range vals {
			flt := Filter{Field: field, Column: f.Column, Op: op, Array: f.Array}
			if op == OpIn {
				for _, part := range strings.Split(raw, ",") {
					flt.Values = append(flt.Values, typed(strings.TrimSpace(part)))
				}
			} else {
				flt.Value = typed(raw)
			}
			spec.Filters = append(spec.Filters, flt)
		}
	}

	return spec, nil
}

// splitKey parses "field" and "field[op]" keys, failing closed on an
// unknown operator or a malformed bracket suffix.
func splitKey(key string) (string, Op, error) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return key, OpEq, nil
	}
	if !strings.HasSuffix(key, "]") || open == 0 {
		return "", "", domain.ValidationError{Field: key, Msg: "malformed filter key"}
	}
	field := key[:open]
	op := Op(key[open+1 : len(key)-1])
	if _, ok := validOps[op]; !ok {
		return "", "", domain.ValidationError{Field: field, Msg: "unknown operator " + string(op)}
	}
	return field, op, nil
}

// typed coerces a raw query value into the narrowest Go type so the driver
// presents the right parameter type to the database.
func typed(raw string) any {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if raw == "true" || raw == "false" {
		return raw == "true"
	}
	return raw
}
