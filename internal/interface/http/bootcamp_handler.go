package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/internal/application"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/interface/middleware"
	"github.com/bootcamphub/bootcamp-api/pkg/response"
	"github.com/bootcamphub/bootcamp-api/pkg/validation"
)

type BootcampHandler struct {
	Svc    *application.BootcampService
	Logger *logrus.Logger
}

func NewBootcampHandler(svc *application.BootcampService, logger *logrus.Logger) *BootcampHandler {
	return &BootcampHandler{Svc: svc, Logger: logger}
}

func (h *BootcampHandler) List(c *gin.Context) {
	env, err := h.Svc.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, env)
}

func (h *BootcampHandler) Get(c *gin.Context) {
	b, err := h.Svc.GetByID(c.Request.Context(), c.Param("bootcampId"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

type createBootcampRequest struct {
	Name          string   `json:"name" binding:"required,max=50"`
	Description   string   `json:"description" binding:"required,max=500"`
	Website       string   `json:"website" binding:"omitempty,url"`
	Phone         string   `json:"phone" binding:"omitempty,max=20"`
	Email         string   `json:"email" binding:"omitempty,email"`
	Address       string   `json:"address" binding:"required"`
	Careers       []string `json:"careers" binding:"required,min=1"`
	Housing       bool     `json:"housing"`
	JobAssistance bool     `json:"job_assistance"`
	JobGuarantee  bool     `json:"job_guarantee"`
	AcceptGI      bool     `json:"accept_gi"`
}

func (h *BootcampHandler) Create(c *gin.Context) {
	var req createBootcampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	b, err := h.Svc.Create(c.Request.Context(), middleware.CurrentUser(c), &entity.Bootcamp{
		Name:          req.Name,
		Description:   req.Description,
		Website:       req.Website,
		Phone:         req.Phone,
		Email:         req.Email,
		Address:       req.Address,
		Careers:       req.Careers,
		Housing:       req.Housing,
		JobAssistance: req.JobAssistance,
		JobGuarantee:  req.JobGuarantee,
		AcceptGI:      req.AcceptGI,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, b)
}

func (h *BootcampHandler) Update(c *gin.Context) {
	var in application.UpdateBootcampInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	b, err := h.Svc.Update(c.Request.Context(), middleware.CurrentUser(c), c.Param("bootcampId"), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, b)
}

func (h *BootcampHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.CurrentUser(c), c.Param("bootcampId")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *BootcampHandler) Radius(c *gin.Context) {
	distance, err := strconv.ParseFloat(c.Param("distance"), 64)
	if err != nil {
		response.Err(c, http.StatusBadRequest, "distance must be a number of miles")
		return
	}
	items, err := h.Svc.Radius(c.Request.Context(), c.Param("zipcode"), distance)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	count := len(items)
	c.JSON(http.StatusOK, response.Body{Success: true, Count: &count, Data: items})
}

func (h *BootcampHandler) UploadPhoto(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Err(c, http.StatusBadRequest, "please upload a file")
		return
	}
	src, err := file.Open()
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	defer func() { _ = src.Close() }()

	photoURL, err := h.Svc.UploadPhoto(
		c.Request.Context(),
		middleware.CurrentUser(c),
		c.Param("bootcampId"),
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		src,
	)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"photo": photoURL})
}

func (h *BootcampHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Svc.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	count := len(hits)
	c.JSON(http.StatusOK, response.Body{Success: true, Count: &count, Data: hits})
}
