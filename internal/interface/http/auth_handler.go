package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
	"github.com/oksasatya/go-blog-api/pkg/response"
	"github.com/oksasatya/go-blog-api/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

// respondError maps a service error onto its status code, hiding internal
// detail from the client.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError && logger != nil {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	response.Error[any](c, status, apperr.ClientMessage(err), nil)
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}, "user registered", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	tok, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithFields(logrus.Fields{"email": req.Email, "ip": clientIP(c)}).Warn("login rejected")
		}
		respondError(c, h.Logger, err)
		return
	}

	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{"email": req.Email, "ip": clientIP(c)}).Info("login successful")
	}
	response.Success(c, http.StatusOK, gin.H{
		"access_token": tok.AccessToken,
		"token_type":   tok.TokenType,
		"expires_in":   tok.ExpiresIn,
	}, "login successful", nil)
}

// Logout POST /api/logout (bearer)
func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxTokenKey)
	if err := h.Svc.Logout(c.Request.Context(), token); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{
			"user_id": c.GetString(middleware.CtxUserIDKey),
			"ip":      clientIP(c),
		}).Info("logout successful")
	}
	response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "successfully logged out", nil)
}
