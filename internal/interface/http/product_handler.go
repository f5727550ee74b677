package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/interface/middleware"
	"github.com/andrisatya/marketplace-api/pkg/response"
	"github.com/andrisatya/marketplace-api/pkg/validation"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Svc: svc, Logger: logger}
}

type createProductRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	ImageURL    string `json:"image_url" binding:"required"`
}

type updateProductRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
}

// List returns all products, newest first. Public.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.internal(c, "failed to fetch products", err)
		return
	}
	response.Success(c, http.StatusOK, products, "products", nil)
}

// ListMine returns the caller's products, newest first.
func (h *ProductHandler) ListMine(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	products, err := h.Svc.ListMine(c.Request.Context(), subject)
	if err != nil {
		h.internal(c, "failed to fetch your products", err)
		return
	}
	response.Success(c, http.StatusOK, products, "your products", nil)
}

// Get returns a single product with its owner and comments. Public.
func (h *ProductHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "product id is required", nil)
		return
	}
	product, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, "product not found", nil)
			return
		}
		h.internal(c, "failed to fetch product", err)
		return
	}
	response.Success(c, http.StatusOK, product, "product", nil)
}

// Create persists a new product owned by the caller.
func (h *ProductHandler) Create(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, missingFieldsMessage(err), validation.ToDetails(err))
		return
	}

	product, err := h.Svc.Create(c.Request.Context(), subject, application.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		h.internal(c, "failed to create product", err)
		return
	}
	response.Success(c, http.StatusCreated, product, "product created", nil)
}

// Update applies the supplied fields to the caller's own product.
func (h *ProductHandler) Update(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "product id is required", nil)
		return
	}

	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	product, err := h.Svc.Update(c.Request.Context(), id, subject, application.UpdateProductInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error(c, http.StatusForbidden, "you can only update your own products", nil)
		default:
			h.internal(c, "failed to update product", err)
		}
		return
	}
	response.Success(c, http.StatusOK, product, "product updated", nil)
}

// Delete permanently removes the caller's own product.
func (h *ProductHandler) Delete(c *gin.Context) {
	subject := c.GetString(middleware.CtxSubjectKey)
	if subject == "" {
		response.Error(c, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id := c.Param("id")
	if id == "" {
		response.Error(c, http.StatusBadRequest, "product id is required", nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id, subject); err != nil {
		switch {
		case errors.Is(err, application.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, "product not found", nil)
		case errors.Is(err, application.ErrNotOwner):
			response.Error(c, http.StatusForbidden, "you can only delete your own products", nil)
		default:
			h.internal(c, "failed to delete product", err)
		}
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true}, "product deleted successfully", nil)
}

// Search queries the product search index. Public.
func (h *ProductHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "query parameter q is required", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.internal(c, "search failed", err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", nil)
}

func (h *ProductHandler) internal(c *gin.Context, msg string, err error) {
	h.Logger.WithError(err).WithField("request_id", c.GetString("request_id")).Error(msg)
	response.Error(c, http.StatusInternalServerError, msg, nil)
}

// missingFieldsMessage names the missing required fields, falling back to a
// generic message for other binding failures.
func missingFieldsMessage(err error) string {
	missing := validation.MissingFields(err)
	if len(missing) == 0 {
		return "invalid payload"
	}
	return strings.Join(missing, ", ") + " required"
}
