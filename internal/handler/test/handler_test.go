package test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogCPT/internal/config"
	handlers "blogCPT/internal/handler"
)

func createTestHandlers() *handlers.Handlers {
	cfg := &config.Config{
		JWTSecretKey:        "test-secret-key",
		AccessTokenDuration: time.Hour,
		MaxUploadSize:       5 * 1024 * 1024,
	}

	return &handlers.Handlers{
		AuthService:     &MockAuthService{},
		PostService:     &MockPostService{},
		CategoryService: &MockCategoryService{},
		UploadService:   &MockUploadService{},
		UserRepo:        &MockUserRepository{},
		Cfg:             cfg,
		Validate:        validator.New(),
	}
}

type envelope struct {
	Success    bool                 `json:"success"`
	Data       json.RawMessage      `json:"data"`
	Pagination *handlers.Pagination `json:"pagination"`
	Error      string               `json:"error"`
	Details    map[string]string    `json:"details"`
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()

	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}
