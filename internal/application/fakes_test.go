package application

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-blog-api/internal/apperr"
	"github.com/oksasatya/go-blog-api/internal/domain/entity"
	"github.com/oksasatya/go-blog-api/pkg/helpers"
)

// In-memory stand-ins for the Postgres repositories and the Redis session
// store, so service behavior can be tested without infrastructure.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by id
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return apperr.DuplicateEmail()
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.NotFound("user")
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.NotFound("user")
}

type memPostRepo struct {
	mu    sync.Mutex
	posts map[string]*entity.Post
	order []string
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: make(map[string]*entity.Post)}
}

func (r *memPostRepo) Create(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.posts[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *memPostRepo) GetByID(_ context.Context, id string) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, apperr.NotFound("post")
}

func (r *memPostRepo) List(_ context.Context) ([]*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Post, 0, len(r.order))
	for _, id := range r.order {
		cp := *r.posts[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *memPostRepo) Update(_ context.Context, p *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return apperr.NotFound("post")
	}
	p.UpdatedAt = time.Now()
	cp := *p
	r.posts[p.ID] = &cp
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return apperr.NotFound("post")
	}
	delete(r.posts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// failingPostRepo simulates a broken store.
type failingPostRepo struct{}

var errStore = errors.New("store unavailable")

func (failingPostRepo) Create(context.Context, *entity.Post) error { return apperr.Internal(errStore) }
func (failingPostRepo) GetByID(context.Context, string) (*entity.Post, error) {
	return nil, apperr.Internal(errStore)
}
func (failingPostRepo) List(context.Context) ([]*entity.Post, error) {
	return nil, apperr.Internal(errStore)
}
func (failingPostRepo) Update(context.Context, *entity.Post) error { return apperr.Internal(errStore) }
func (failingPostRepo) Delete(context.Context, string) error       { return apperr.Internal(errStore) }

// failingUserRepo simulates a broken user store.
type failingUserRepo struct{}

func (failingUserRepo) Create(context.Context, *entity.User) error { return apperr.Internal(errStore) }
func (failingUserRepo) GetByID(context.Context, string) (*entity.User, error) {
	return nil, apperr.Internal(errStore)
}
func (failingUserRepo) GetByEmail(context.Context, string) (*entity.User, error) {
	return nil, apperr.Internal(errStore)
}

type memSessions struct {
	mu       sync.Mutex
	sessions map[string]string // sid -> userID
}

func newMemSessions() *memSessions {
	return &memSessions{sessions: make(map[string]string)}
}

func (s *memSessions) Put(_ context.Context, sid, userID string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = userID
	return nil
}

func (s *memSessions) Get(_ context.Context, sid string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	uid, ok := s.sessions[sid]
	return uid, ok, nil
}

func (s *memSessions) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestAuthService() *AuthService {
	return NewAuthService(
		newMemUserRepo(),
		newMemSessions(),
		helpers.NewJWTManager("test-secret", time.Hour),
		testLogger(),
		nil,
		"go-blog-api",
	)
}
