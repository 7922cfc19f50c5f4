package application

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// UserService is the admin-only user management surface.
type UserService struct {
	Users  repository.UserRepository
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewUserService(users repository.UserRepository, cfg *config.Config, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Cfg: cfg, Logger: logger}
}

func (s *UserService) List(ctx context.Context, values url.Values) (*query.Envelope, error) {
	spec, err := query.Parse(values, s.Users.Schema(), query.Options{MaxLimit: s.Cfg.MaxPageSize})
	if err != nil {
		return nil, err
	}
	return s.Users.List(ctx, spec)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return s.Users.GetByID(ctx, id)
}

type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) && role != entity.RoleAdmin {
		return nil, domain.ValidationError{Field: "role", Msg: "unknown role"}
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created by admin")
	return u, nil
}

type UpdateUserInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) && *in.Role != entity.RoleAdmin {
			return nil, domain.ValidationError{Field: "role", Msg: "unknown role"}
		}
		u.Role = *in.Role
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.Users.Delete(ctx, id)
}
