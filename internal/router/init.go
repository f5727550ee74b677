package router

import (
	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/container"
	pginfra "github.com/andrisatya/marketplace-api/internal/infrastructure/postgres"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	commentRepo := pginfra.NewCommentRepository(pool)

	userSvc := application.NewUserService(userRepo, logger)
	productSvc := application.NewProductService(
		productRepo,
		container.GetES(),
		cfg.ESProductsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)

	var notify application.Publisher
	if pub := container.GetRabbitPub(); pub != nil {
		notify = pub
	}
	commentSvc := application.NewCommentService(commentRepo, productRepo, userRepo, notify, logger)

	verifier := container.GetVerifier()

	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), verifier))
	r.Add(modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), verifier))
	r.Add(modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), verifier))
	r.Add(modules.NewUploadModule(handlers.NewUploadHandler(productSvc, logger), verifier))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
