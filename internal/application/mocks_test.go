package application

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/andrisatya/marketplace-api/internal/domain/entity"
	repo "github.com/andrisatya/marketplace-api/internal/domain/repository"
	"github.com/andrisatya/marketplace-api/pkg/mailer"
)

// In-memory repository fakes. They mirror the contract of the postgres
// implementations, including the owner-conditional mutation semantics.

type memUserRepo struct {
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
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

type memProductRepo struct {
	products map[string]*entity.Product
	users    *memUserRepo
	seq      int
	base     time.Time
}

func newMemProductRepo(users *memUserRepo) *memProductRepo {
	return &memProductRepo{
		products: make(map[string]*entity.Product),
		users:    users,
		base:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	m.seq++
	p.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", m.seq)
	p.CreatedAt = m.base.Add(time.Duration(m.seq) * time.Second)
	p.UpdatedAt = p.CreatedAt
	if p.Comments == nil {
		p.Comments = []entity.Comment{}
	}
	stored := *p
	m.products[p.ID] = &stored
	return nil
}

func (m *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *p
	res.Comments = []entity.Comment{}
	if m.users != nil {
		if u, ok := m.users.users[p.UserID]; ok {
			owner := *u
			res.User = &owner
		}
	}
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
	for _, p := range m.products {
		if !keep(p) {
			continue
		}
		res := *p
		res.Comments = []entity.Comment{}
		if m.users != nil {
			if u, ok := m.users.users[p.UserID]; ok {
				owner := *u
				res.User = &owner
			}
		}
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memProductRepo) Update(_ context.Context, id, ownerID string, patch repo.ProductPatch) (*entity.Product, error) {
	p, ok := m.products[id]
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
	p, ok := m.products[id]
	if !ok {
		return repo.ErrNotFound
	}
	if p.UserID != ownerID {
		return repo.ErrNotOwner
	}
	delete(m.products, id)
	return nil
}

type memCommentRepo struct {
	comments map[string]*entity.Comment
	seq      int
	base     time.Time
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{
		comments: make(map[string]*entity.Comment),
		base:     time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memCommentRepo) Create(_ context.Context, c *entity.Comment) error {
	m.seq++
	c.ID = fmt.Sprintf("11111111-0000-0000-0000-%012d", m.seq)
	c.CreatedAt = m.base.Add(time.Duration(m.seq) * time.Second)
	stored := *c
	m.comments[c.ID] = &stored
	return nil
}

func (m *memCommentRepo) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	res := *c
	return &res, nil
}

func (m *memCommentRepo) Delete(_ context.Context, id, ownerID string) error {
	c, ok := m.comments[id]
	if !ok {
		return repo.ErrNotFound
	}
	if c.UserID != ownerID {
		return repo.ErrNotOwner
	}
	delete(m.comments, id)
	return nil
}

// capturePublisher records published notification jobs.
type capturePublisher struct {
	jobs []mailer.EmailJob
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	var job mailer.EmailJob
	if err := json.Unmarshal(b, &job); err != nil {
		return err
	}
	p.jobs = append(p.jobs, job)
	return nil
}

var (
	_ repo.UserRepository    = (*memUserRepo)(nil)
	_ repo.ProductRepository = (*memProductRepo)(nil)
	_ repo.CommentRepository = (*memCommentRepo)(nil)
)
