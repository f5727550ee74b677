package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrisatya/marketplace-api/internal/container"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/identity"
)

// UploadModule wires the product image upload endpoint.
// Protected: POST /api/uploads/product-image
type UploadModule struct {
	Handler  *handlers.UploadHandler
	Verifier identity.Verifier
}

func NewUploadModule(h *handlers.UploadHandler, v identity.Verifier) *UploadModule {
	return &UploadModule{Handler: h, Verifier: v}
}

func (m *UploadModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	auth.Use(middleware.RateLimit(container.GetRedis(), 20, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.POST("/uploads/product-image", m.Handler.ProductImage)
	}
}
