package application

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
)

// CourseService handles courses, which always live under a bootcamp.
type CourseService struct {
	Courses   repository.CourseRepository
	Bootcamps repository.BootcampRepository
	Cfg       *config.Config
	Logger    *logrus.Logger
}

func NewCourseService(courses repository.CourseRepository, bootcamps repository.BootcampRepository, cfg *config.Config, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Bootcamps: bootcamps, Cfg: cfg, Logger: logger}
}

// List serves both /courses and /bootcamps/:id/courses. For the nested
// route, bootcampID scopes the result by injecting an equality filter
// after parsing so client input can never widen the scope.
func (s *CourseService) List(ctx context.Context, bootcampID string, values url.Values) (*query.Envelope, error) {
	spec, err := query.Parse(values, s.Courses.Schema(), query.Options{
		MaxLimit: s.Cfg.MaxPageSize,
		Populate: "bootcamp",
	})
	if err != nil {
		return nil, err
	}
	if bootcampID != "" {
		spec.Filters = append(spec.Filters, query.Filter{
			Field:  "bootcamp_id",
			Column: "bootcamp_id",
			Op:     query.OpEq,
			Value:  bootcampID,
		})
	}
	return s.Courses.List(ctx, spec)
}

func (s *CourseService) GetByID(ctx context.Context, id string) (*entity.Course, error) {
	return s.Courses.GetByID(ctx, id)
}

type CourseInput struct {
	Title                string `json:"title"`
	Description          string `json:"description"`
	Weeks                int    `json:"weeks"`
	Tuition              int    `json:"tuition"`
	MinimumSkill         string `json:"minimum_skill"`
	ScholarshipAvailable bool   `json:"scholarship_available"`
}

// Create adds a course under a bootcamp. The parent must exist (NotFound
// wins over Forbidden) and the caller must own it unless they are admin.
func (s *CourseService) Create(ctx context.Context, caller *entity.User, bootcampID string, in CourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(b.UserID) {
		return nil, domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to add a course to bootcamp %s", caller.ID, b.ID),
		}
	}
	if !entity.ValidSkill(in.MinimumSkill) {
		return nil, domain.ValidationError{Field: "minimum_skill", Msg: "must be beginner, intermediate or advanced"}
	}

	c := &entity.Course{
		BootcampID:           b.ID,
		UserID:               caller.ID,
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.Bootcamps.RecomputeAverageCost(ctx, b.ID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Error("failed to recompute average cost")
	}
	return c, nil
}

type UpdateCourseInput struct {
	Title                *string `json:"title"`
	Description          *string `json:"description"`
	Weeks                *int    `json:"weeks"`
	Tuition              *int    `json:"tuition"`
	MinimumSkill         *string `json:"minimum_skill"`
	ScholarshipAvailable *bool   `json:"scholarship_available"`
}

func (s *CourseService) Update(ctx context.Context, caller *entity.User, id string, in UpdateCourseInput) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(c.UserID) {
		return nil, domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to update course %s", caller.ID, c.ID),
		}
	}
	if in.Title != nil {
		c.Title = *in.Title
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	if in.MinimumSkill != nil {
		if !entity.ValidSkill(*in.MinimumSkill) {
			return nil, domain.ValidationError{Field: "minimum_skill", Msg: "must be beginner, intermediate or advanced"}
		}
		c.MinimumSkill = *in.MinimumSkill
	}
	if in.ScholarshipAvailable != nil {
		c.ScholarshipAvailable = *in.ScholarshipAvailable
	}
	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, err
	}
	if err := s.Bootcamps.RecomputeAverageCost(ctx, c.BootcampID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", c.BootcampID).Error("failed to recompute average cost")
	}
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, caller *entity.User, id string) error {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanAccess(c.UserID) {
		return domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to delete course %s", caller.ID, c.ID),
		}
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.Bootcamps.RecomputeAverageCost(ctx, c.BootcampID); err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", c.BootcampID).Error("failed to recompute average cost")
	}
	return nil
}
