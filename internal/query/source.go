package query

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
)

// Querier is the slice of pgxpool.Pool the source needs. pgxmock satisfies
// it in tests.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PopulateFunc embeds related child records into the fetched rows.
// It receives the page of parent rows keyed by wire names.
type PopulateFunc func(ctx context.Context, rows []map[string]any) error

// Source executes parsed query specs against one table. Per request it
// performs a count round trip, a fetch round trip, and at most one
// populate round trip; data-source errors propagate unchanged.
type Source struct {
	DB        Querier
	Schema    *Schema
	Populates map[string]PopulateFunc
}

// Run executes the spec and wraps the results in a paginated envelope.
func (s *Source) Run(ctx context.Context, spec *Spec) (*Envelope, error) {
	if spec.Populate != "" {
		if _, ok := s.Populates[spec.Populate]; !ok {
			return nil, domain.ValidationError{Field: "populate", Msg: "unknown relation " + spec.Populate}
		}
	}

	countSQL, countArgs := BuildCount(s.Schema, spec)
	var total int
	if err := s.DB.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	selectSQL, selectArgs := BuildSelect(s.Schema, spec)
	rows, err := s.DB.Query(ctx, selectSQL, selectArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]map[string]any, 0, spec.Limit)
	fields := rows.FieldDescriptions()
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		rec := make(map[string]any, len(fields))
		for i, fd := range fields {
			rec[s.Schema.WireName(fd.Name)] = vals[i]
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if spec.Populate != "" {
		if err := s.Populates[spec.Populate](ctx, records); err != nil {
			return nil, err
		}
	}

	return NewEnvelope(spec, total, records), nil
}
