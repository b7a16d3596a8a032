package router

import (
	"github.com/oksasatya/go-blog-api/internal/application"
	"github.com/oksasatya/go-blog-api/internal/container"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/postgres"
	"github.com/oksasatya/go-blog-api/internal/infrastructure/redissession"
	handlers "github.com/oksasatya/go-blog-api/internal/interface/http"
	"github.com/oksasatya/go-blog-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the
// router registry. Called once during startup to wire everything up.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	users := postgres.NewUserRepository(container.GetPGPool())
	posts := postgres.NewPostRepository(container.GetPGPool())
	sessions := redissession.New(container.GetRedis())

	var pub application.MailPublisher
	if p := container.GetRabbitPub(); p != nil && cfg.MailSendEnabled {
		pub = p
	}

	authSvc := application.NewAuthService(users, sessions, container.GetJWT(), logger, pub, cfg.AppName)
	postSvc := application.NewPostService(posts, authSvc, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), authSvc))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, logger), authSvc))

	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
