package http_test

import (
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	sharinghttp "sharednotes/internal/sharing/adapters/http"
	"sharednotes/internal/sharing/adapters/http/middleware"
	"sharednotes/internal/sharing/domain/entities"
)

var (
	updated = time.Unix(1700000000, 500000000).UTC()
	errDB   = entities.ErrStorage
)

type mockSharingService struct {
	mock.Mock
}

func (m *mockSharingService) SaveNote(ctx context.Context, id, title, content string) (entities.Note, error) {
	args := m.Called(ctx, id, title, content)
	return args.Get(0).(entities.Note), args.Error(1)
}

func (m *mockSharingService) NewNote(ctx context.Context, title, content string) (entities.Note, error) {
	args := m.Called(ctx, title, content)
	return args.Get(0).(entities.Note), args.Error(1)
}

func (m *mockSharingService) GetNote(ctx context.Context, id string) (entities.Note, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(entities.Note), args.Error(1)
}

func (m *mockSharingService) CreateToken(ctx context.Context, noteID string) (entities.Token, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).(entities.Token), args.Error(1)
}

func (m *mockSharingService) ListTokens(ctx context.Context, noteID string) ([]entities.Token, error) {
	args := m.Called(ctx, noteID)
	return args.Get(0).([]entities.Token), args.Error(1)
}

func (m *mockSharingService) ViewNote(ctx context.Context, noteID, presented string) (entities.Snapshot, error) {
	args := m.Called(ctx, noteID, presented)
	return args.Get(0).(entities.Snapshot), args.Error(1)
}

func newTestApp(svc *mockSharingService) *fiber.App {
	app := fiber.New()
	sharinghttp.SetupRouter(app, svc, "http://notes.local/")
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*nethttp.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestSaveNote(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMocks func(svc *mockSharingService)
		wantStatus int
	}{
		{
			name: "saved",
			body: `{"title":"Plan","content":"Draft v1"}`,
			setupMocks: func(svc *mockSharingService) {
				svc.On("SaveNote", mock.Anything, "n1", "Plan", "Draft v1").
					Return(entities.Note{ID: "n1"}, nil).Once()
			},
			wantStatus: fiber.StatusNoContent,
		},
		{
			name:       "bad body",
			body:       `{"title":`,
			setupMocks: func(*mockSharingService) {},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name: "storage down",
			body: `{"title":"Plan","content":"Draft v1"}`,
			setupMocks: func(svc *mockSharingService) {
				svc.On("SaveNote", mock.Anything, "n1", "Plan", "Draft v1").
					Return(entities.Note{}, errDB).Once()
			},
			wantStatus: fiber.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSharingService)
			tt.setupMocks(svc)

			resp, _ := doRequest(t, newTestApp(svc), fiber.MethodPut, "/api/v1/notes/n1", tt.body)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}

func TestNewNote(t *testing.T) {
	svc := new(mockSharingService)
	svc.On("NewNote", mock.Anything, "Plan", "Draft").
		Return(entities.Note{ID: "abc123def456", Title: "Plan", Content: "Draft", UpdatedAt: updated}, nil).Once()

	resp, body := doRequest(t, newTestApp(svc), fiber.MethodPost, "/api/v1/notes", `{"title":"Plan","content":"Draft"}`)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var got sharinghttp.NoteResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "abc123def456", got.ID)
	assert.InDelta(t, 1700000000.5, got.UpdatedAt, 1e-6)
}

func TestGetNote(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		svc := new(mockSharingService)
		svc.On("GetNote", mock.Anything, "n1").
			Return(entities.Note{ID: "n1", Title: "Plan", Content: "Draft", UpdatedAt: updated}, nil).Once()

		resp, body := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/notes/n1", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got sharinghttp.NoteResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Draft", got.Content)
	})

	t.Run("missing", func(t *testing.T) {
		svc := new(mockSharingService)
		svc.On("GetNote", mock.Anything, "n1").Return(entities.Note{}, entities.ErrNoteNotFound).Once()

		resp, _ := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/notes/n1", "")
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	})
}

func TestCreateToken(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: fiber.StatusCreated},
		{name: "cap exceeded", err: entities.ErrCapExceeded, wantStatus: fiber.StatusConflict},
		{name: "note missing", err: entities.ErrNoteNotFound, wantStatus: fiber.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockSharingService)
			svc.On("CreateToken", mock.Anything, "n1").
				Return(entities.Token{Token: "f00dfeed0001", NoteID: "n1", CreatedAt: updated}, tt.err).Once()

			resp, body := doRequest(t, newTestApp(svc), fiber.MethodPost, "/api/v1/notes/n1/tokens", "")
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			if tt.err == nil {
				var got sharinghttp.TokenResponse
				require.NoError(t, json.Unmarshal(body, &got))
				assert.Equal(t, "f00dfeed0001", got.Token)
				assert.Equal(t, "http://notes.local/?id=n1&token=f00dfeed0001&view=viewer", got.ShareURL)
			}
		})
	}
}

func TestListTokens(t *testing.T) {
	svc := new(mockSharingService)
	svc.On("ListTokens", mock.Anything, "n1").Return([]entities.Token{
		{Token: "aaa", NoteID: "n1", CreatedAt: updated},
		{Token: "bbb", NoteID: "n1", CreatedAt: updated.Add(time.Second)},
	}, nil).Once()

	resp, body := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/notes/n1/tokens", "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got []sharinghttp.TokenResponse
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got, 2)
	assert.Equal(t, "aaa", got[0].Token)
	assert.Equal(t, "bbb", got[1].Token)
}

func TestViewNote(t *testing.T) {
	snap := entities.Snapshot{Title: "Plan", Content: "Draft v1", UpdatedAt: updated}

	t.Run("query form", func(t *testing.T) {
		svc := new(mockSharingService)
		svc.On("ViewNote", mock.Anything, "n1", "aaa").Return(snap, nil).Once()

		resp, body := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/view?view=viewer&id=n1&token=aaa", "")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, "no-store", resp.Header.Get("Cache-Control"))

		var got sharinghttp.SnapshotResponse
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "Draft v1", got.Content)
	})

	t.Run("path form without token", func(t *testing.T) {
		svc := new(mockSharingService)
		svc.On("ViewNote", mock.Anything, "n1", "").Return(snap, nil).Once()

		resp, _ := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/view/n1", "")
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("rejections look the same", func(t *testing.T) {
		bodies := make([]string, 0, 2)
		for _, reason := range []entities.RejectReason{entities.ReasonNoteNotFound, entities.ReasonUnauthorized} {
			svc := new(mockSharingService)
			svc.On("ViewNote", mock.Anything, "n1", "zzz").
				Return(entities.Snapshot{}, entities.NewRejectedError(reason)).Once()

			resp, body := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/view/n1?token=zzz", "")
			assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
			bodies = append(bodies, string(body))
		}
		assert.Equal(t, bodies[0], bodies[1])
		assert.Contains(t, bodies[0], sharinghttp.ErrMsgCannotView)
	})

	t.Run("storage failure is not a rejection", func(t *testing.T) {
		svc := new(mockSharingService)
		svc.On("ViewNote", mock.Anything, "n1", "").Return(entities.Snapshot{}, errDB).Once()

		resp, _ := doRequest(t, newTestApp(svc), fiber.MethodGet, "/api/v1/view/n1", "")
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestRequestIDAndNotFound(t *testing.T) {
	app := newTestApp(new(mockSharingService))

	req := httptest.NewRequest(fiber.MethodGet, "/nope", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-1")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(middleware.RequestIDHeader))

	resp2, _ := doRequest(t, app, fiber.MethodGet, "/nope", "")
	assert.NotEmpty(t, resp2.Header.Get(middleware.RequestIDHeader))

	long := strings.Repeat("r", 500)
	req3 := httptest.NewRequest(fiber.MethodGet, "/nope", nil)
	req3.Header.Set(middleware.RequestIDHeader, long)
	resp3, err := app.Test(req3)
	require.NoError(t, err)
	defer resp3.Body.Close()
	got := resp3.Header.Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, got)
	assert.NotEqual(t, long, got)
}

func TestRecoveryMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	app.Get("/panic", func(fiber.Ctx) error {
		panic("boom")
	})

	resp, body := doRequest(t, app, fiber.MethodGet, "/panic", "")
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "internal server error")
}
