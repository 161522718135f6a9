package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow-app/eventflow-api/internal/dto"
	"github.com/eventflow-app/eventflow-api/internal/middleware"
	"github.com/eventflow-app/eventflow-api/internal/service"
	"github.com/eventflow-app/eventflow-api/pkg/blob"
)

type memoryBlob struct {
	data []byte
}

func (b *memoryBlob) Load(ctx context.Context) ([]byte, error) {
	if b.data == nil {
		return nil, blob.ErrNotFound
	}
	return b.data, nil
}

func (b *memoryBlob) Save(ctx context.Context, data []byte) error {
	b.data = data
	return nil
}

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewAuthService(&memoryBlob{}, "test-secret", time.Hour, nil, nil)
	auth := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/register", auth.Register)
	r.POST("/auth/login", auth.Login)
	r.GET("/auth/me", middleware.JWT(svc), auth.Me)
	return r
}

func TestAuthHandlerRegisterLoginMe(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "dana@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data dto.AuthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotEmpty(t, envelope.Data.Token)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+envelope.Data.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dana@example.com")
}

func TestAuthHandlerMeRequiresToken(t *testing.T) {
	r := newAuthRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	r := newAuthRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
