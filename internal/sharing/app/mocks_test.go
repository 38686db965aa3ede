package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"sharednotes/internal/sharing/domain/entities"
)

var (
	ErrDatabaseOperation = errors.New("database error")
	ErrCacheOperation    = errors.New("cache error")
)

type mockNoteRepository struct {
	mock.Mock
}

func (m *mockNoteRepository) Upsert(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteRepository) GetByID(ctx context.Context, id string) (*entities.Note, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

type mockTokenRepository struct {
	mock.Mock
}

func (m *mockTokenRepository) CreateWithinLimit(ctx context.Context, token *entities.Token, limit int) error {
	return m.Called(ctx, token, limit).Error(0)
}

func (m *mockTokenRepository) ListByNoteID(ctx context.Context, noteID string) ([]*entities.Token, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Token), args.Error(1)
}

type mockNoteCache struct {
	mock.Mock
}

func (m *mockNoteCache) Get(ctx context.Context, noteID string) (*entities.Note, error) {
	args := m.Called(ctx, noteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Note), args.Error(1)
}

func (m *mockNoteCache) PutIfNewer(ctx context.Context, note *entities.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *mockNoteCache) Delete(ctx context.Context, noteID string) error {
	return m.Called(ctx, noteID).Error(0)
}

func (m *mockNoteCache) Close() error {
	return m.Called().Error(0)
}

// sequenceIDs выдает id-1, id-2, ... для заметок и tok-1, tok-2, ... для токенов.
type sequenceIDs struct {
	mu            sync.Mutex
	notes, tokens int
}

func (g *sequenceIDs) NewNoteID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notes++
	return fmt.Sprintf("id-%d", g.notes)
}

func (g *sequenceIDs) NewToken() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tokens++
	return fmt.Sprintf("tok-%d", g.tokens)
}

// stepClock начинает с start и сдвигается на секунду при каждом вызове.
type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock(start time.Time) *stepClock {
	return &stepClock{now: start}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(time.Second)
	return t
}
