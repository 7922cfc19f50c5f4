package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

type ReviewRepository struct {
	db     DB
	source *query.Source
}

func NewReviewRepository(db DB) *ReviewRepository {
	r := &ReviewRepository{db: db}
	r.source = &query.Source{
		DB:     db,
		Schema: ReviewsSchema,
		Populates: map[string]query.PopulateFunc{
			"bootcamp": r.populateBootcamp,
		},
	}
	return r
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	rv.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO reviews (id, bootcamp_id, user_id, title, text, rating)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rv.ID, rv.BootcampID, rv.UserID, rv.Title, rv.Text, rv.Rating)
	if err := row.Scan(&rv.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "review", Msg: "already reviewed this bootcamp"}
		}
		return err
	}
	return nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, id string) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.db.QueryRow(ctx, `
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews WHERE id = $1
	`, id)
	if err := row.Scan(&rv.ID, &rv.BootcampID, &rv.UserID, &rv.Title, &rv.Text,
		&rv.Rating, &rv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "review", ID: id}
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) GetByUserAndBootcamp(ctx context.Context, userID, bootcampID string) (*entity.Review, error) {
	rv := &entity.Review{}
	row := r.db.QueryRow(ctx, `
		SELECT id, bootcamp_id, user_id, title, text, rating, created_at
		FROM reviews WHERE user_id = $1 AND bootcamp_id = $2
	`, userID, bootcampID)
	if err := row.Scan(&rv.ID, &rv.BootcampID, &rv.UserID, &rv.Title, &rv.Text,
		&rv.Rating, &rv.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.db.Exec(ctx, `
		UPDATE reviews SET title = $1, text = $2, rating = $3 WHERE id = $4
	`, rv.Title, rv.Text, rv.Rating, rv.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "review", ID: rv.ID}
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "review", ID: id}
	}
	return nil
}

func (r *ReviewRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE bootcamp_id = $1`, bootcampID)
	return err
}

func (r *ReviewRepository) List(ctx context.Context, spec *query.Spec) (*query.Envelope, error) {
	return r.source.Run(ctx, spec)
}

func (r *ReviewRepository) populateBootcamp(ctx context.Context, records []map[string]any) error {
	ids := make([]string, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		id, ok := rec["bootcamp_id"].(string)
		if !ok {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, name, description FROM bootcamps WHERE id = ANY($1)
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	parents := make(map[string]map[string]any, len(ids))
	for rows.Next() {
		var id, name, desc string
		if err := rows.Scan(&id, &name, &desc); err != nil {
			return err
		}
		parents[id] = map[string]any{"id": id, "name": name, "description": desc}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rec := range records {
		if id, ok := rec["bootcamp_id"].(string); ok {
			if p, found := parents[id]; found {
				rec["bootcamp"] = p
			}
		}
	}
	return nil
}

func (r *ReviewRepository) Schema() *query.Schema { return ReviewsSchema }

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
