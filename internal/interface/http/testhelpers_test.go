package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/andrisatya/marketplace-api/internal/application"
	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	repo "github.com/andrisatya/marketplace-api/internal/domain/repository"
	handlers "github.com/andrisatya/marketplace-api/internal/interface/http"
	"github.com/andrisatya/marketplace-api/internal/router/modules"
	"github.com/andrisatya/marketplace-api/pkg/identity"
	"github.com/andrisatya/marketplace-api/pkg/validation"
)

// In-memory repositories mirroring the postgres contract, including the
// owner-conditional mutation semantics and cascade delete of comments.

type memUserRepo struct {
	users map[string]*entity.User
}

func (m *memUserRepo) Upsert(_ context.Context, u *entity.User) error {
	now := time.Now()
	if existing, ok := m.users[u.ID]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	stored := *u
	m.users[u.ID] = &stored
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *u
	return &res, nil
}

type memStore struct {
	users    *memUserRepo
	products map[string]*entity.Product
	comments map[string]*entity.Comment
	seq      int
	base     time.Time
}

func newMemStore() *memStore {
	return &memStore{
		users:    &memUserRepo{users: make(map[string]*entity.User)},
		products: make(map[string]*entity.Product),
		comments: make(map[string]*entity.Comment),
		base:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) nextID(prefix string) (string, time.Time) {
	m.seq++
	return fmt.Sprintf("%s-0000-0000-0000-%012d", prefix, m.seq), m.base.Add(time.Duration(m.seq) * time.Second)
}

type memProductRepo struct{ store *memStore }

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	id, at := m.store.nextID("00000000")
	p.ID, p.CreatedAt, p.UpdatedAt = id, at, at
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	stored := *p
	m.store.products[p.ID] = &stored
	return nil
}

func (m *memProductRepo) ownerOf(p *entity.Product) *entity.User {
	if u, ok := m.store.users.users[p.UserID]; ok {
		owner := *u
		return &owner
	}
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.store.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *p
	res.User = m.ownerOf(p)
	res.Comments = []entity.Comment{}
	for _, c := range m.store.comments {
		if c.ProductID != id {
			continue
		}
		cc := *c
		if u, ok := m.store.users.users[c.UserID]; ok {
			author := *u
			cc.User = &author
		}
		res.Comments = append(res.Comments, cc)
	}
	sort.Slice(res.Comments, func(i, j int) bool {
		return res.Comments[i].CreatedAt.After(res.Comments[j].CreatedAt)
	})
	return &res, nil
}

func (m *memProductRepo) GetAll(_ context.Context) ([]entity.Product, error) {
	return m.list(func(*entity.Product) bool { return true }), nil
}

func (m *memProductRepo) GetByUserID(_ context.Context, userID string) ([]entity.Product, error) {
	return m.list(func(p *entity.Product) bool { return p.UserID == userID }), nil
}

func (m *memProductRepo) list(keep func(*entity.Product) bool) []entity.Product {
	out := []entity.Product{}
	for _, p := range m.store.products {
		if !keep(p) {
			continue
		}
		res := *p
		res.User = m.ownerOf(p)
		res.Comments = []entity.Comment{}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memProductRepo) Update(_ context.Context, id, ownerID string, patch repo.ProductPatch) (*entity.Product, error) {
	p, ok := m.store.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	if p.UserID != ownerID {
		return nil, repo.ErrNotOwner
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	p.UpdatedAt = time.Now()
	res := *p
	res.Comments = []entity.Comment{}
	return &res, nil
}

func (m *memProductRepo) Delete(_ context.Context, id, ownerID string) error {
	p, ok := m.store.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.UserID != ownerID {
		return repo.ErrNotOwner
	}
	delete(m.store.products, id)
	// mirror the store's ON DELETE CASCADE
	for cid, c := range m.store.comments {
		if c.ProductID == id {
			delete(m.store.comments, cid)
		}
	}
	return nil
}

type memCommentRepo struct{ store *memStore }

func (m *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	id, at := m.store.nextID("11111111")
	c.ID, c.CreatedAt = id, at
	stored := *c
	m.store.comments[c.ID] = &stored
	return nil
}

func (m *memCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := m.store.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *c
	return &res, nil
}

func (m *memCommentRepo) Delete(_ context.Context, id, ownerID string) error {
	c, ok := m.store.comments[id]
	if !ok {
		return repo.ErrNotFound
	}
	if c.UserID != ownerID {
		return repo.ErrNotOwner
	}
	delete(m.store.comments, id)
	return nil
}

var (
	_ repo.UserRepository    = (*memUserRepo)(nil)
	_ repo.ProductRepository = (*memProductRepo)(nil)
	_ repo.CommentRepository = (*memCommentRepo)(nil)
)

// newTestRouter assembles the real modules over in-memory repositories. The
// verifier resolves the subject from the X-Test-Subject header so tests can
// act as any identity without minting tokens.
func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	store := newMemStore()
	productRepo := &memProductRepo{store: store}
	commentRepo := &memCommentRepo{store: store}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	userSvc := application.NewUserService(store.users, logger)
	productSvc := application.NewProductService(productRepo, nil, "", nil, "", logger)
	commentSvc := application.NewCommentService(commentRepo, productRepo, store.users, nil, logger)

	verifier := identity.VerifierFunc(func(r *http.Request) (string, error) {
		if s := r.Header.Get("X-Test-Subject"); s != "" {
			return s, nil
		}
		return "", identity.ErrNoSubject
	})

	engine := gin.New()
	api := engine.Group("/api")
	modules.NewUserModule(handlers.NewUserHandler(userSvc, logger), verifier).Register(api)
	modules.NewProductModule(handlers.NewProductHandler(productSvc, logger), verifier).Register(api)
	modules.NewCommentModule(handlers.NewCommentHandler(commentSvc, logger), verifier).Register(api)
	modules.NewUploadModule(handlers.NewUploadHandler(productSvc, logger), verifier).Register(api)
	return engine, store
}

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, subject string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if subject != "" {
		req.Header.Set("X-Test-Subject", subject)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "response must be a JSON envelope: %s", w.Body.String())
	return w, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func createProduct(t *testing.T, engine *gin.Engine, subject, title, description, imageURL string) entity.Product {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/products", subject, gin.H{
		"title":       title,
		"description": description,
		"image_url":   imageURL,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return decodeData[entity.Product](t, env)
}

func syncUser(t *testing.T, engine *gin.Engine, subject, email, name string) entity.User {
	t.Helper()
	w, env := doJSON(t, engine, http.MethodPost, "/api/users/sync", subject, gin.H{
		"email": email,
		"name":  name,
	})
	require.Equal(t, http.StatusOK, w.Code)
	return decodeData[entity.User](t, env)
}
