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

type CourseRepository struct {
	db     DB
	source *query.Source
}

func NewCourseRepository(db DB) *CourseRepository {
	r := &CourseRepository{db: db}
	r.source = &query.Source{
		DB:     db,
		Schema: CoursesSchema,
		Populates: map[string]query.PopulateFunc{
			"bootcamp": r.populateBootcamp,
		},
	}
	return r
}

func (r *CourseRepository) Create(ctx context.Context, c *entity.Course) error {
	c.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO courses (id, bootcamp_id, user_id, title, description, weeks,
			tuition, minimum_skill, scholarship_available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`, c.ID, c.BootcampID, c.UserID, c.Title, c.Description, c.Weeks,
		c.Tuition, c.MinimumSkill, c.ScholarshipAvailable)
	return row.Scan(&c.CreatedAt)
}

func (r *CourseRepository) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	c := &entity.Course{}
	var bID, bName, bDesc *string
	row := r.db.QueryRow(ctx, `
		SELECT c.id, c.bootcamp_id, c.user_id, c.title, c.description, c.weeks,
			c.tuition, c.minimum_skill, c.scholarship_available, c.created_at,
			b.id, b.name, b.description
		FROM courses c
		LEFT JOIN bootcamps b ON b.id = c.bootcamp_id
		WHERE c.id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.BootcampID, &c.UserID, &c.Title, &c.Description,
		&c.Weeks, &c.Tuition, &c.MinimumSkill, &c.ScholarshipAvailable,
		&c.CreatedAt, &bID, &bName, &bDesc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "course", ID: id}
		}
		return nil, err
	}
	if bID != nil {
		c.Bootcamp = &entity.BootcampSummary{ID: *bID, Name: *bName, Description: *bDesc}
	}
	return c, nil
}

func (r *CourseRepository) Update(ctx context.Context, c *entity.Course) error {
	res, err := r.db.Exec(ctx, `
		UPDATE courses
		SET title = $1, description = $2, weeks = $3, tuition = $4,
			minimum_skill = $5, scholarship_available = $6
		WHERE id = $7
	`, c.Title, c.Description, c.Weeks, c.Tuition, c.MinimumSkill,
		c.ScholarshipAvailable, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "course", ID: c.ID}
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "course", ID: id}
	}
	return nil
}

func (r *CourseRepository) DeleteByBootcamp(ctx context.Context, bootcampID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM courses WHERE bootcamp_id = $1`, bootcampID)
	return err
}

func (r *CourseRepository) List(ctx context.Context, spec *query.Spec) (*query.Envelope, error) {
	return r.source.Run(ctx, spec)
}

// populateBootcamp embeds a parent summary into each fetched course.
func (r *CourseRepository) populateBootcamp(ctx context.Context, records []map[string]any) error {
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

func (r *CourseRepository) Schema() *query.Schema { return CoursesSchema }

var _ repository.CourseRepository = (*CourseRepository)(nil)
