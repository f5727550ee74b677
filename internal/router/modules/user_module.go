package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrisatya/marketplace-api/internal/container"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/identity"
)

// UserModule wires the identity-provider sync endpoint.
// Protected: POST /api/users/sync
type UserModule struct {
	Handler  *handlers.UserHandler
	Verifier identity.Verifier
}

func NewUserModule(h *handlers.UserHandler, v identity.Verifier) *UserModule {
	return &UserModule{Handler: h, Verifier: v}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	auth.Use(middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.POST("/users/sync", m.Handler.Sync)
	}
}
