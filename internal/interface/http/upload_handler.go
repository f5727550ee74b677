package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/response"
)

// maxUploadBytes caps product image uploads at 8 MiB.
const maxUploadBytes = 8 << 20

type UploadHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewUploadHandler(svc *application.ProductService, logger *logrus.Logger) *UploadHandler {
	return &UploadHandler{Svc: svc, Logger: logger}
}

// ProductImage accepts a multipart file upload, stores it in object storage
// and returns the public URL to use as image_url.
func (h *UploadHandler) ProductImage(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}
	defer func() { _ = file.Close() }()

	contentType := header.Header.Get("Content-Type")
	url, err := h.Svc.UploadImage(c.Request.Context(), subject, file, header.Filename, contentType)
	if err != nil {
		h.Logger.WithError(err).WithField("subject", subject).Error("image upload failed")
		response.Error(c, http.StatusInternalServerError, "failed to upload image", nil)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"url": url}, "image uploaded", nil)
}
