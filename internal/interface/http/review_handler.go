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

type ReviewHandler struct {
	Svc    *application.ReviewService
	Logger *logrus.Logger
}

func NewReviewHandler(svc *application.ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Svc: svc, Logger: logger}
}

// List handles /reviews and /bootcamps/:bootcampId/reviews.
func (h *ReviewHandler) List(c *gin.Context) {
	env, err := h.Svc.List(c.Request.Context(), c.Param("bootcampId"), c.Request.URL.Query())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, env)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

type createReviewRequest struct {
	Title  string `json:"title" binding:"required,max=100"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"required,min=1,max=10"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	r, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), c.Param("bootcampId"), application.ReviewInput{
		Title:  req.Title,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, r)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	var in application.UpdateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	r, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, r)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
