package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/application"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
)

// AuthModule wires authentication routes.
// Public: POST /api/register, POST /api/login
// Protected: POST /api/logout

type AuthModule struct {
	Handler *handlers.AuthHandler
	Auth    *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, auth *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Auth: auth}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.Auth))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}
