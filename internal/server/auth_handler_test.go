package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerBody() map[string]any {
	return map[string]any{"name": "Jane Recruiter", "email": "Jane@Example.com", "password": "password123"}
}

// TestRegister_ReturnsToken tests that registration creates an account and signs a token
func TestRegister_ReturnsToken(t *testing.T) {
	ts := newTestServer(t)

	w := ts.call(t, http.MethodPost, "/auth/register", registerBody())

	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "jane@example.com", field(body, "user", "email"))
	assert.NotContains(t, body["user"], "passwordHash")

	claims, err := ts.tokens.ValidateToken(body["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
}

// TestRegister_DuplicateEmail tests that a second account with the same email is refused
func TestRegister_DuplicateEmail(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.call(t, http.MethodPost, "/auth/register", registerBody()).Code)

	w := ts.call(t, http.MethodPost, "/auth/register", registerBody())
	requireError(t, w, http.StatusConflict, "STAFF_EMAIL_EXISTS")
}

// TestRegister_Validation tests request validation errors
func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.call(t, http.MethodPost, "/auth/register", map[string]any{"name": "Jane", "email": "jane@example.com", "password": "short"})
	body := requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Contains(t, body["message"], "password must be at least 8 characters")

	w = ts.call(t, http.MethodPost, "/auth/register", "{not json")
	body = requireError(t, w, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Equal(t, "Invalid request body", body["message"])
}

// TestLogin tests login with good and bad credentials
func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.call(t, http.MethodPost, "/auth/register", registerBody()).Code)

	w := ts.call(t, http.MethodPost, "/auth/login", map[string]any{"email": "jane@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	assert.NotEmpty(t, decodeBody(t, w)["token"])

	w = ts.call(t, http.MethodPost, "/auth/login", map[string]any{"email": "jane@example.com", "password": "wrong-password"})
	wrongPassword := requireError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	w = ts.call(t, http.MethodPost, "/auth/login", map[string]any{"email": "nobody@example.com", "password": "password123"})
	unknownEmail := requireError(t, w, http.StatusUnauthorized, "INVALID_CREDENTIALS")

	assert.Equal(t, wrongPassword["message"], unknownEmail["message"])
}

// TestMe tests that the token identifies the registered account
func TestMe(t *testing.T) {
	ts := newTestServer(t)
	w := ts.call(t, http.MethodPost, "/auth/register", registerBody())
	require.Equal(t, http.StatusCreated, w.Code)
	token := decodeBody(t, w)["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Recruiter", field(decodeBody(t, rec), "user", "name"))

	// The default test token belongs to no stored account.
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+ts.token)
	rec = httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	requireError(t, rec, http.StatusNotFound, "STAFF_NOT_FOUND")
}

// TestLogin_RateLimited tests the login endpoint's burst limit
func TestLogin_RateLimited(t *testing.T) {
	ts := newTestServer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		last = ts.call(t, http.MethodPost, "/auth/login", map[string]any{"email": "x@example.com", "password": "password123"})
	}
	requireError(t, last, http.StatusTooManyRequests, "RATE_LIMITED")
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
}
