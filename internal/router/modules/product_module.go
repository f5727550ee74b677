package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrisatya/marketplace-api/internal/container"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/identity"
)

// ProductModule wires product routes.
// Public: GET /api/products, GET /api/products/search, GET /api/products/:id
// Protected: GET /api/products/my, POST/PUT/DELETE /api/products
type ProductModule struct {
	Handler  *handlers.ProductHandler
	Verifier identity.Verifier
}

func NewProductModule(h *handlers.ProductHandler, v identity.Verifier) *ProductModule {
	return &ProductModule{Handler: h, Verifier: v}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	publicLimiter := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	searchLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.GET("/products", publicLimiter, m.Handler.List)
	rg.GET("/products/search", searchLimiter, m.Handler.Search)
	// static /products/my and /products/search take priority over :id
	rg.GET("/products/:id", publicLimiter, m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.GET("/products/my", m.Handler.ListMine)
		auth.POST("/products", m.Handler.Create)
		auth.PUT("/products/:id", m.Handler.Update)
		auth.DELETE("/products/:id", m.Handler.Delete)
	}
}
