package core

import (
	"context"
	"sync"
	"time"
)

// In-memory repository doubles so service and router tests run without a
// database.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*UserRecord
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*UserRecord{}}
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) FindByID(_ context.Context, id int64) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, username, passwordHash, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; ok {
		return 0, ErrAlreadyExists
	}
	r.nextID++
	r.users[username] = &UserRecord{
		ID:           r.nextID,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	return r.nextID, nil
}

type fakePostRepo struct {
	mu     sync.Mutex
	nextID int64
	posts  map[int64]*PostRecord
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*PostRecord{}}
}

func (r *fakePostRepo) FindByID(_ context.Context, id int64) (*PostRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (r *fakePostRepo) Create(_ context.Context, title, content string, writerID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	now := time.Now()
	r.posts[r.nextID] = &PostRecord{
		ID:        r.nextID,
		Title:     title,
		Content:   content,
		WriterID:  writerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return r.nextID, nil
}

func (r *fakePostRepo) Update(_ context.Context, id int64, title, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Title = title
	p.Content = content
	p.UpdatedAt = time.Now()
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func testConfig() Config {
	return Config{
		JWTSecret:       "test-secret",
		JWTIssuer:       "blog-api-test",
		TokenTTLMinutes: 60,
	}
}
