package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/internal/application"
	"github.com/bootcamphub/bootcamp-api/internal/interface/middleware"
	"github.com/bootcamphub/bootcamp-api/pkg/response"
	"github.com/bootcamphub/bootcamp-api/pkg/validation"
)

type CourseHandler struct {
	Svc    *application.CourseService
	Logger *logrus.Logger
}

func NewCourseHandler(svc *application.CourseService, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{Svc: svc, Logger: logger}
}

// List handles /courses and /bootcamps/:bootcampId/courses.
func (h *CourseHandler) List(c *gin.Context) {
	env, err := h.Svc.List(c.Request.Context(), c.Param("bootcampId"), c.Request.URL.Query())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, env)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

type createCourseRequest struct {
	Title                string `json:"title" binding:"required"`
	Description          string `json:"description" binding:"required"`
	Weeks                int    `json:"weeks" binding:"required,min=1"`
	Tuition              int    `json:"tuition" binding:"required,min=0"`
	MinimumSkill         string `json:"minimum_skill" binding:"required,oneof=beginner intermediate advanced"`
	ScholarshipAvailable bool   `json:"scholarship_available"`
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req createCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	course, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("bootcampId"), application.CourseInput{
		Title:                req.Title,
		Description:          req.Description,
		Weeks:                req.Weeks,
		Tuition:              req.Tuition,
		MinimumSkill:         req.MinimumSkill,
		ScholarshipAvailable: req.ScholarshipAvailable,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	var in application.UpdateCourseInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	course, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, course)
}

func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
