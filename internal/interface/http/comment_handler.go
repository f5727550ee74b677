package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/response"
	"github.com/andrisatya/marketplace-api/pkg/validation"
)

type CommentHandler struct {
	Svc    *application.CommentService
	Logger *logrus.Logger
}

func NewCommentHandler(svc *application.CommentService, logger *logrus.Logger) *CommentHandler {
	return &CommentHandler{Svc: svc, Logger: logger}
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create adds a comment to the product in the path, owned by the caller.
func (h *CommentHandler) Create(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	productID := c.Param("productId")
	if productID == "" {
		response.Error(c, http.StatusNotFound, "product id is required", nil)
		return
	}

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "comment content is required", validation.ToDetails(err))
		return
	}

	comment, err := h.Svc.Create(c.Request.Context(), subject, productID, req.Content)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.Logger.WithError(err).WithField("product_id", productID).Error("create comment failed")
		response.Error(c, http.StatusInternalServerError, "failed to create comment", nil)
		return
	}
	response.Success(c, http.StatusCreated, comment, "comment created", nil)
}

// Delete removes the caller's own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	commentID := c.Param("commentId")
	if commentID == "" {
		response.Error(c, http.StatusNotFound, "comment id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), subject, commentID); err != nil {
		switch {
		case errors.Is(err, application.ErrCommentNotFound):
			response.Error(c, http.StatusNotFound, "comment not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error(c, http.StatusForbidden, "you can only delete your own comments", nil)
		default:
			h.Logger.WithError(err).WithField("comment_id", commentID).Error("delete comment failed")
			response.Error(c, http.StatusInternalServerError, "failed to delete comment", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "comment deleted successfully", nil)
}
