package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

type UserRepository struct {
	db     DB
	source *query.Source
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db:     db,
		source: &query.Source{DB: db, Schema: UsersSchema},
	}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	u.ID = uuid.NewString()
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (id, name, email, role, password)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Email, u.Role, u.Password)
	if err := row.Scan(&u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *UserRepository) getBy(ctx context.Context, column, value string) (*entity.User, error) {
	u := &entity.User{}
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, role, password, created_at, updated_at
		FROM users
		WHERE `+column+` = $1
	`, value)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.Password,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError{Resource: "user", ID: value}
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, role = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.Email, u.Role, u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ConflictError{Resource: "user", Msg: "email already registered"}
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "user", ID: u.ID}
	}
	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = now() WHERE id = $2
	`, passwordHash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NotFoundError{Resource: "user", ID: id}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, spec *query.Spec) (*query.Envelope, error) {
	return r.source.Run(ctx, spec)
}

func (r *UserRepository) Schema() *query.Schema { return UsersSchema }

var _ repository.UserRepository = (*UserRepository)(nil)
