package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/internal/query"
	"github.com/bootcamphub/bootcamp-api/pkg/geocoder"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
)

// milesPerDegree approximates one degree of latitude as 69 miles, the
// conversion used for the radius bounding box.
const milesPerDegree = 69.0

// BootcampService coordinates bootcamp CRUD with the geocoder, the photo
// store, and the search index.
type BootcampService struct {
	Bootcamps repository.BootcampRepository
	Courses   repository.CourseRepository
	Reviews   repository.ReviewRepository
	Geocoder  *geocoder.Client
	GCS       *storage.Client
	ES        *elasticsearch.Client
	Cfg       *config.Config
	Logger    *logrus.Logger
}

func NewBootcampService(
	bootcamps repository.BootcampRepository,
	courses repository.CourseRepository,
	reviews repository.ReviewRepository,
	geo *geocoder.Client,
	gcs *storage.Client,
	es *elasticsearch.Client,
	cfg *config.Config,
	logger *logrus.Logger,
) *BootcampService {
	return &BootcampService{
		Bootcamps: bootcamps,
		Courses:   courses,
		Reviews:   reviews,
		Geocoder:  geo,
		GCS:       gcs,
		ES:        es,
		Cfg:       cfg,
		Logger:    logger,
	}
}

func (s *BootcampService) List(ctx context.Context, values url.Values) (*query.Envelope, error) {
	spec, err := query.Parse(values, s.Bootcamps.Schema(), query.Options{
		MaxLimit: s.Cfg.MaxPageSize,
		Populate: "courses",
	})
	if err != nil {
		return nil, err
	}
	return s.Bootcamps.List(ctx, spec)
}

func (s *BootcampService) GetByID(ctx context.Context, id string) (*entity.Bootcamp, error) {
	return s.Bootcamps.GetByID(ctx, id)
}

// Create inserts a bootcamp owned by the caller. Publishers may only own
// one bootcamp, so the ownership check runs before the insert; admins are
// exempt from the limit.
func (s *BootcampService) Create(ctx context.Context, caller *entity.User, b *entity.Bootcamp) (*entity.Bootcamp, error) {
	if caller.Role != entity.RoleAdmin {
		existing, err := s.Bootcamps.GetByOwner(ctx, caller.ID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ConflictError{
				Resource: "bootcamp",
				Msg:      fmt.Sprintf("the user with id %s has already published a bootcamp", caller.ID),
			}
		}
	}
	for _, c := range b.Careers {
		if !entity.ValidCareer(c) {
			return nil, domain.ValidationError{Field: "careers", Msg: fmt.Sprintf("unknown career %q", c)}
		}
	}

	b.UserID = caller.ID
	b.Slug = slug.Make(b.Name)
	s.geocode(ctx, b)

	if err := s.Bootcamps.Create(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	s.Logger.WithFields(logrus.Fields{"bootcamp_id": b.ID, "user_id": caller.ID}).Info("bootcamp created")
	return b, nil
}

type UpdateBootcampInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Website       *string  `json:"website"`
	Phone         *string  `json:"phone"`
	Email         *string  `json:"email"`
	Address       *string  `json:"address"`
	Careers       []string `json:"careers"`
	Housing       *bool    `json:"housing"`
	JobAssistance *bool    `json:"job_assistance"`
	JobGuarantee  *bool    `json:"job_guarantee"`
	AcceptGI      *bool    `json:"accept_gi"`
}

// Update applies a partial update after the existence and ownership
// checks, in that order: a missing bootcamp is NotFound even for callers
// who could not have touched it.
func (s *BootcampService) Update(ctx context.Context, caller *entity.User, id string, in UpdateBootcampInput) (*entity.Bootcamp, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanAccess(b.UserID) {
		return nil, domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to update this bootcamp", caller.ID),
		}
	}

	if in.Name != nil {
		b.Name = *in.Name
		b.Slug = slug.Make(b.Name)
	}
	if in.Description != nil {
		b.Description = *in.Description
	}
	if in.Website != nil {
		b.Website = *in.Website
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Email != nil {
		b.Email = *in.Email
	}
	if in.Address != nil && *in.Address != b.Address {
		b.Address = *in.Address
		s.geocode(ctx, b)
	}
	if in.Careers != nil {
		for _, c := range in.Careers {
			if !entity.ValidCareer(c) {
				return nil, domain.ValidationError{Field: "careers", Msg: fmt.Sprintf("unknown career %q", c)}
			}
		}
		b.Careers = in.Careers
	}
	if in.Housing != nil {
		b.Housing = *in.Housing
	}
	if in.JobAssistance != nil {
		b.JobAssistance = *in.JobAssistance
	}
	if in.JobGuarantee != nil {
		b.JobGuarantee = *in.JobGuarantee
	}
	if in.AcceptGI != nil {
		b.AcceptGI = *in.AcceptGI
	}

	if err := s.Bootcamps.Update(ctx, b); err != nil {
		return nil, err
	}
	s.index(ctx, b)
	return b, nil
}

// Delete removes a bootcamp and cascades to its courses and reviews.
func (s *BootcampService) Delete(ctx context.Context, caller *entity.User, id string) error {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !caller.CanAccess(b.UserID) {
		return domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to delete this bootcamp", caller.ID),
		}
	}
	if err := s.Courses.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	if err := s.Reviews.DeleteByBootcamp(ctx, id); err != nil {
		return err
	}
	if err := s.Bootcamps.Delete(ctx, id); err != nil {
		return err
	}
	s.deindex(ctx, id)
	s.Logger.WithFields(logrus.Fields{"bootcamp_id": id, "user_id": caller.ID}).Info("bootcamp deleted")
	return nil
}

// Radius finds bootcamps within distance miles of the zipcode's location
// using a bounding box around the geocoded point.
func (s *BootcampService) Radius(ctx context.Context, zipcode string, distance float64) ([]entity.Bootcamp, error) {
	if distance <= 0 {
		return nil, domain.ValidationError{Field: "distance", Msg: "must be a positive number of miles"}
	}
	loc, err := s.Geocoder.Geocode(ctx, zipcode)
	if err != nil {
		if errors.Is(err, geocoder.ErrNoResult) {
			return nil, domain.ValidationError{Field: "zipcode", Msg: "could not be geocoded"}
		}
		return nil, err
	}
	deg := distance / milesPerDegree
	return s.Bootcamps.FindInBounds(ctx, repository.Bounds{
		MinLat: loc.Latitude - deg,
		MaxLat: loc.Latitude + deg,
		MinLng: loc.Longitude - deg,
		MaxLng: loc.Longitude + deg,
	})
}

// UploadPhoto stores an image in the bucket and records its public URL.
func (s *BootcampService) UploadPhoto(ctx context.Context, caller *entity.User, id, filename, contentType string, size int64, r io.Reader) (string, error) {
	b, err := s.Bootcamps.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !caller.CanAccess(b.UserID) {
		return "", domain.ForbiddenError{
			Msg: fmt.Sprintf("user %s is not authorized to update this bootcamp", caller.ID),
		}
	}
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ValidationError{Field: "file", Msg: "please upload an image file"}
	}
	if size > s.Cfg.MaxFileUpload {
		return "", domain.ValidationError{
			Field: "file",
			Msg:   fmt.Sprintf("please upload an image less than %d bytes", s.Cfg.MaxFileUpload),
		}
	}
	if s.GCS == nil || s.Cfg.GCSBucket == "" {
		return "", domain.InternalError{Msg: "photo storage not configured"}
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("photos", b.ID, "photo"+ext))
	photoURL, err := helpers.UploadObject(ctx, s.GCS, s.Cfg.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", err
	}
	if err := s.Bootcamps.UpdatePhoto(ctx, id, photoURL); err != nil {
		return "", err
	}
	return photoURL, nil
}

// Search performs a multi_match query on name and description against the
// search index.
func (s *BootcampService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.Cfg.ESBootcampsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(body)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.Cfg.ESBootcampsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// geocode fills in coordinates for the bootcamp's address. Geocoding is
// best effort on writes: a lookup failure leaves the coordinates unset
// rather than failing the request.
func (s *BootcampService) geocode(ctx context.Context, b *entity.Bootcamp) {
	if s.Geocoder == nil || b.Address == "" {
		return
	}
	loc, err := s.Geocoder.Geocode(ctx, b.Address)
	if err != nil {
		s.Logger.WithError(err).WithField("address", b.Address).Warn("geocoding failed")
		return
	}
	lat, lng := loc.Latitude, loc.Longitude
	b.Latitude, b.Longitude = &lat, &lng
}

func (s *BootcampService) index(ctx context.Context, b *entity.Bootcamp) {
	if s.ES == nil || s.Cfg.ESBootcampsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          b.ID,
		"name":        b.Name,
		"slug":        b.Slug,
		"description": b.Description,
		"careers":     b.Careers,
		"created_at":  b.CreatedAt.Format(time.RFC3339Nano),
	}
	body, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.Cfg.ESBootcampsIndex, DocumentID: b.ID, Body: strings.NewReader(string(body)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", b.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithField("status", res.Status()).WithField("bootcamp_id", b.ID).Warn("es index response error")
	}
}

func (s *BootcampService) deindex(ctx context.Context, id string) {
	if s.ES == nil || s.Cfg.ESBootcampsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.Cfg.ESBootcampsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("bootcamp_id", id).Warn("es delete failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
}
