package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/draftbook/clinic-management-backend/internal/apperr"
)

type Handler struct {
	svc Service
}

func NewHandler(s Service) *Handler {
	return &Handler{svc: s}
}

// POST /auth/login
func (h *Handler) Login(c *gin.Context) {
	var in LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	tokens, user, err := h.svc.Login(in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"accessToken":  tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"user":         user,
	})
}

// POST /auth/registro
func (h *Handler) Register(c *gin.Context) {
	var in RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("datos inválidos: "+err.Error()))
		return
	}

	user, err := h.svc.Register(in)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registro exitoso",
		"user":    user,
	})
}

// POST /auth/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var in struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("refreshToken requerido"))
		return
	}

	access, err := h.svc.Refresh(in.RefreshToken)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": access})
}

// POST /auth/forgot-password
func (h *Handler) ForgotPassword(c *gin.Context) {
	var in struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("email requerido"))
		return
	}

	token, err := h.svc.RequestPasswordReset(c.Request.Context(), in.Email)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	// The token is delivered out-of-band in production; it is echoed
	// here because no mail channel exists.
	resp := gin.H{"message": "si el correo existe, se generó un token de restablecimiento"}
	if token != "" {
		resp["resetToken"] = token
	}
	c.JSON(http.StatusOK, resp)
}

// POST /auth/reset-password
func (h *Handler) ResetPassword(c *gin.Context) {
	var in struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apperr.Respond(c, apperr.Validation("token y password requeridos"))
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), in.Token, in.Password); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "contraseña actualizada"})
}
