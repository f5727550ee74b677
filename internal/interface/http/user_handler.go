package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/response"
	"github.com/andrisatya/marketplace-api/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type syncUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url" binding:"omitempty,url"`
}

// Sync upserts the caller's user row from the identity provider profile.
// Idempotent; the first call for a subject creates the row.
func (h *UserHandler) Sync(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req syncUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Sync(c.Request.Context(), subject, application.SyncInput{
		Email:     req.Email,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.Logger.WithError(err).WithField("subject", subject).Error("user sync failed")
		response.Error(c, http.StatusInternalServerError, "failed to sync user", nil)
		return
	}
	response.Success(c, http.StatusOK, u, "user synced", nil)
}
