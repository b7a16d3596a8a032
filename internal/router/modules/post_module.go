package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-blog-api/internal/application"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/interface/middleware"
)

// PostModule wires post CRUD routes.
// Public: GET /api/posts, GET /api/posts/:id
// Protected (owner-checked in the service): POST /api/posts,
// PUT /api/posts/:id, DELETE /api/posts/:id

type PostModule struct {
	Handler *handlers.PostHandler
	Auth    *application.AuthService
}

func NewPostModule(h *handlers.PostHandler, auth *application.AuthService) *PostModule {
	return &PostModule{Handler: h, Auth: auth}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/posts", m.Handler.List)
	rg.GET("/posts/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.BearerAuth(m.Auth))
	{
		auth.POST("/posts", m.Handler.Create)
		auth.PUT("/posts/:id", m.Handler.Update)
		auth.DELETE("/posts/:id", m.Handler.Delete)
	}
}
