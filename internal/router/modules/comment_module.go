package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrisatya/marketplace-api/internal/container"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/identity"
)

// CommentModule wires comment routes.
// Protected: POST /api/comments/:productId, DELETE /api/comments/:commentId
type CommentModule struct {
	Handler  *handlers.CommentHandler
	Verifier identity.Verifier
}

func NewCommentModule(h *handlers.CommentHandler, v identity.Verifier) *CommentModule {
	return &CommentModule{Handler: h, Verifier: v}
}

func (m *CommentModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Verifier))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyBySubject(), nil))
	{
		auth.POST("/comments/:productId", m.Handler.Create)
		auth.DELETE("/comments/:commentId", m.Handler.Delete)
	}
}
