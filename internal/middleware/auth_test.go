package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/models"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, want uint) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetUserID(r)
		require.True(t, ok)
		assert.Equal(t, want, id)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	token, err := utils.CreateToken(42, "alice", testSecret)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	RequireAuth(testSecret)(protectedHandler(t, 42)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	called := false
	RequireAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestRequireAuthRejectsWrongSecret(t *testing.T) {
	token, err := utils.CreateToken(42, "alice", "other-secret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	RequireAuth(testSecret)(protectedHandler(t, 42)).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

type fakeRequest struct {
	Name string `json:"name"`
}

func (r *fakeRequest) Validate() error {
	if r.Name == "" {
		return &models.ErrorResponse{Code: "missing_name", Message: "name is required"}
	}
	return nil
}

func TestValidateRequestStoresValidBody(t *testing.T) {
	var got *fakeRequest
	handler := ValidateRequest[*fakeRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetValidatedRequest[*fakeRequest](r)
	}))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ok"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "ok", got.Name)
}

func TestValidateRequestRejectsBadJSON(t *testing.T) {
	handler := ValidateRequest[*fakeRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateRequestRejectsInvalidBody(t *testing.T) {
	handler := ValidateRequest[*fakeRequest]()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing_name")
}
