package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("session not found")

type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Create(ctx context.Context, ttl time.Duration) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
}

// GormStore keeps sessions in MySQL. Table creation is handled by
// cmd/tools/createtable, not AutoMigrate.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := g.db.WithContext(ctx).
		Where("id = ? AND expires_at > ?", id, time.Now()).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (g *GormStore) Create(ctx context.Context, ttl time.Duration) (*Session, error) {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

func (g *GormStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = time.Now()
	return g.db.WithContext(ctx).Save(s).Error
}

func (g *GormStore) Delete(ctx context.Context, id string) error {
	return g.db.WithContext(ctx).Delete(&Session{}, "id = ?", id).Error
}

// MemoryStore is the in-memory Store used by tests.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]*Session{}}
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Create(ctx context.Context, ttl time.Duration) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.sessions[s.ID] = s
	cp := *s
	return &cp, nil
}

func (m *MemoryStore) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s.UpdatedAt = time.Now()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
