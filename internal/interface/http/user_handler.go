package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/internal/application"
	"github.com/bootcamphub/bootcamp-api/pkg/response"
	"github.com/bootcamphub/bootcamp-api/pkg/validation"
)

// UserHandler is the admin-only user management surface; the router
// guards every route with role authorization.
type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	env, err := h.Svc.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.List(c, env)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role"`
}

func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in application.UpdateUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{})
}
