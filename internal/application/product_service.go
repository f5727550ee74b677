package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	repo "github.com/andrisatya/marketplace-api/internal/domain/repository"
	"github.com/andrisatya/marketplace-api/pkg/helpers"
)

// ProductService implements listing CRUD with ownership enforcement, plus the
// search index and image storage side channels. ES and GCS are optional; when
// unset the related features degrade instead of failing requests.
type ProductService struct {
	Repo      repo.ProductRepository
	ES        *elasticsearch.Client
	ESIndex   string
	GCS       *storage.Client
	GCSBucket string
	Logger    *logrus.Logger
}

func NewProductService(r repo.ProductRepository, es *elasticsearch.Client, esIndex string, gcs *storage.Client, gcsBucket string, logger *logrus.Logger) *ProductService {
	return &ProductService{
		Repo:      r,
		ES:        es,
		ESIndex:   esIndex,
		GCS:       gcs,
		GCSBucket: gcsBucket,
		Logger:    logger,
	}
}

type CreateProductInput struct {
	Title       string
	Description string
	ImageURL    string
}

type UpdateProductInput struct {
	Title       *string
	Description *string
	ImageURL    *string
}

// List returns every product, newest first, each with its owner attached.
func (s *ProductService) List(ctx context.Context) ([]entity.Product, error) {
	return s.Repo.GetAll(ctx)
}

// ListMine returns the caller's products, newest first.
func (s *ProductService) ListMine(ctx context.Context, ownerID string) ([]entity.Product, error) {
	return s.Repo.GetByUserID(ctx, ownerID)
}

// Get returns the product with its owner and ordered comments.
func (s *ProductService) Get(ctx context.Context, id string) (*entity.Product, error) {
	p, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create persists a product owned by the caller and indexes it for search.
func (s *ProductService) Create(ctx context.Context, ownerID string, in CreateProductInput) (*entity.Product, error) {
	p := &entity.Product{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		UserID:      ownerID,
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// Update applies the supplied fields when the caller owns the product.
func (s *ProductService) Update(ctx context.Context, id, ownerID string, in UpdateProductInput) (*entity.Product, error) {
	p, err := s.Repo.Update(ctx, id, ownerID, repo.ProductPatch{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrProductNotFound
		case errors.Is(err, repo.ErrNotOwner):
			return nil, ErrNotOwner
		}
		return nil, err
	}
	s.indexProduct(ctx, p)
	return p, nil
}

// Delete removes the product (and, via the store cascade, its comments) when
// the caller owns it.
func (s *ProductService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.Repo.Delete(ctx, id, ownerID); err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return ErrProductNotFound
		case errors.Is(err, repo.ErrNotOwner):
			return ErrNotOwner
		}
		return err
	}
	s.removeFromIndex(ctx, id)
	return nil
}

// UploadImage stores a product image in GCS under the caller's prefix and
// returns its public URL for use as image_url.
func (s *ProductService) UploadImage(ctx context.Context, ownerID string, r io.Reader, filename, contentType string) (string, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return "", errors.New("object storage not configured")
	}
	id := uuid.NewString()
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("products", ownerID, id+ext))
	return helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
}

// Search performs a multi_match query on title and description. Returns an
// empty result set when search is not configured.
func (s *ProductService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// indexProduct mirrors the product into the search index. Best-effort: a
// failure is logged and never surfaced to the request.
func (s *ProductService) indexProduct(ctx context.Context, p *entity.Product) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          p.ID,
		"title":       p.Title,
		"description": p.Description,
		"image_url":   p.ImageURL,
		"user_id":     p.UserID,
		"created_at":  p.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("product_id", p.ID).Warn("es index response error")
	}
}

func (s *ProductService) removeFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: id}

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("product_id", id).Warn("es delete failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
}
