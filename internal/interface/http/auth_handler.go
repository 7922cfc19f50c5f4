package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/internal/application"
	"github.com/bootcamphub/bootcamp-api/internal/interface/middleware"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
	"github.com/bootcamphub/bootcamp-api/pkg/response"
	"github.com/bootcamphub/bootcamp-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	u, tok, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, tok.Value, tok.Expiry)
	response.OK(c, http.StatusCreated, gin.H{"token": tok.Value, "user": u})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	u, tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, tok.Value, tok.Expiry)
	response.OK(c, http.StatusOK, gin.H{"token": tok.Value, "user": u})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	response.OK(c, http.StatusOK, gin.H{})
}

func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, http.StatusOK, middleware.CurrentUser(c))
}

type updateDetailsRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

func (h *AuthHandler) UpdateDetails(c *gin.Context) {
	var req updateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	user := middleware.CurrentUser(c)
	u, err := h.Svc.UpdateDetails(c.Request.Context(), user.ID, application.UpdateDetailsInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, u)
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	user := middleware.CurrentUser(c)
	tok, err := h.Svc.UpdatePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, tok.Value, tok.Expiry)
	response.OK(c, http.StatusOK, gin.H{"token": tok.Value})
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "email sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required,pwd"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Err(c, http.StatusBadRequest, validation.ToMessage(err))
		return
	}
	u, tok, err := h.Svc.ResetPassword(c.Request.Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		response.FromError(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, tok.Value, tok.Expiry)
	response.OK(c, http.StatusOK, gin.H{"token": tok.Value, "user": u})
}
