package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

const bootcampColumns = `id, user_id, name, slug, description, website, phone, email,
	address, latitude, longitude, careers, average_rating, average_cost,
	photo, housing, job_assistance, job_guarantee, accept_gi, created_at`

type BootcampRepository struct {
	db     DB
	source *query.Source
}

func NewBootcampRepository(db DB) *BootcampRepository {
	r := &BootcampRepository{db: db}
	r.source = &query.Source{
		DB:     db,
		Schema: BootcampsSchema,
		Populates: map[string]query.PopulateFunc{
			"courses": r.populateCourses,
		},
	}
	return r
}

func (r *BootcampRepository) Create(ctx context.Context, b *entity.Bootcamp) error {
	b.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO bootcamps (id, user_id, name, slug, description, website, phone,
			email, address, latitude, longitude, careers, photo, housing,
			job_assistance, job_guarantee, accept_gi)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`, b.ID, b.UserID, b.Name, b.Slug, b.Description, b.Website, b.Phone,
		b.Email, b.Address, b.Latitude, b.Longitude, b.Careers, b.Photo,
		b.Housing, b.JobAssistance, b.JobGuarantee, b.AcceptGI)
	if err := row.Scan(&b.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "bootcamp", Msg: "name already taken"}
		}
		return err
	}
	return nil
}

func (r *BootcampRepository) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE id = $1`, id)
	b, err := scanBootcamp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "bootcamp", ID: id}
		}
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) GetByOwner(ctx context.Context, userID string) (*entity.Bootcamp, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bootcampColumns+` FROM bootcamps WHERE user_id = $1`, userID)
	b, err := scanBootcamp(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *BootcampRepository) Update(ctx context.Context, b *entity.Bootcamp) error {
	res, err := r.db.Exec(ctx, `
		UPDATE bootcamps
		SET name = $1, slug = $2, description = $3, website = $4, phone = $5,
			email = $6, address = $7, latitude = $8, longitude = $9, careers = $10,
			housing = $11, job_assistance = $12, job_guarantee = $13, accept_gi = $14
		WHERE id = $15
	`, b.Name, b.Slug, b.Description, b.Website, b.Phone, b.Email, b.Address,
		b.Latitude, b.Longitude, b.Careers, b.Housing, b.JobAssistance,
		b.JobGuarantee, b.AcceptGI, b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "bootcamp", Msg: "name already taken"}
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "bootcamp", ID: b.ID}
	}
	return nil
}

func (r *BootcampRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM bootcamps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "bootcamp", ID: id}
	}
	return nil
}

func (r *BootcampRepository) UpdatePhoto(ctx context.Context, id, photo string) error {
	res, err := r.db.Exec(ctx, `UPDATE bootcamps SET photo = $1 WHERE id = $2`, photo, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "bootcamp", ID: id}
	}
	return nil
}

func (r *BootcampRepository) RecomputeAverageCost(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bootcamps
		SET average_cost = (
			SELECT CEIL(AVG(tuition)) FROM courses WHERE bootcamp_id = $1
		)
		WHERE id = $1
	`, id)
	return err
}

func (r *BootcampRepository) RecomputeAverageRating(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bootcamps
		SET average_rating = (
			SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE bootcamp_id = $1
		)
		WHERE id = $1
	`, id)
	return err
}

func (r *BootcampRepository) FindInBounds(ctx context.Context, bounds repository.Bounds) ([]entity.Bootcamp, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+bootcampColumns+`
		FROM bootcamps
		WHERE latitude BETWEEN $1 AND $2 AND longitude BETWEEN $3 AND $4
		ORDER BY created_at DESC
	`, bounds.MinLat, bounds.MaxLat, bounds.MinLng, bounds.MaxLng)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Bootcamp
	for rows.Next() {
		b, err := scanBootcamp(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BootcampRepository) List(ctx context.Context, spec *query.Spec) (*query.Envelope, error) {
	return r.source.Run(ctx, spec)
}

// populateCourses embeds each bootcamp's courses into the fetched page.
func (r *BootcampRepository) populateCourses(ctx context.Context, records []map[string]any) error {
	ids := make([]string, 0, len(records))
	for _, rec := range records {
		if id, ok := rec["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, bootcamp_id, title, description, weeks, tuition, minimum_skill,
			scholarship_available, created_at
		FROM courses
		WHERE bootcamp_id = ANY($1)
		ORDER BY created_at DESC
	`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byParent := make(map[string][]map[string]any, len(ids))
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.BootcampID, &c.Title, &c.Description,
			&c.Weeks, &c.Tuition, &c.MinimumSkill, &c.ScholarshipAvailable,
			&c.CreatedAt); err != nil {
			return err
		}
		byParent[c.BootcampID] = append(byParent[c.BootcampID], map[string]any{
			"id":                    c.ID,
			"bootcamp_id":           c.BootcampID,
			"title":                 c.Title,
			"description":           c.Description,
			"weeks":                 c.Weeks,
			"tuition":               c.Tuition,
			"minimum_skill":         c.MinimumSkill,
			"scholarship_available": c.ScholarshipAvailable,
			"created_at":            c.CreatedAt,
		})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rec := range records {
		id, _ := rec["id"].(string)
		if kids, ok := byParent[id]; ok {
			rec["courses"] = kids
		} else {
			rec["courses"] = []map[string]any{}
		}
	}
	return nil
}

func scanBootcamp(row pgx.Row) (*entity.Bootcamp, error) {
	b := &entity.Bootcamp{}
	if err := row.Scan(&b.ID, &b.UserID, &b.Name, &b.Slug, &b.Description,
		&b.Website, &b.Phone, &b.Email, &b.Address, &b.Latitude, &b.Longitude,
		&b.Careers, &b.AverageRating, &b.AverageCost, &b.Photo, &b.Housing,
		&b.JobAssistance, &b.JobGuarantee, &b.AcceptGI, &b.CreatedAt); err != nil {
		return nil, fmt.Errorf("scan bootcamp: %w", err)
	}
	return b, nil
}

func (r *BootcampRepository) Schema() *query.Schema { return BootcampsSchema }

var _ repository.BootcampRepository = (*BootcampRepository)(nil)
