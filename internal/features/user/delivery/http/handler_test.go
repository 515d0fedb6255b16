package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-admin-backend/internal/auth"
	userredis "user-admin-backend/internal/features/user/repository/redis"
	"user-admin-backend/internal/features/user/service"
)

type captureSender struct {
	lastOtp string
}

func (c *captureSender) SendOtp(_ context.Context, _, otp string) error {
	c.lastOtp = otp
	return nil
}

type apiEnv struct {
	router *gin.Engine
	sender *captureSender
	svc    service.UserService
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := userredis.NewUserRepository(client)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	sender := &captureSender{}
	svc := service.NewUserService(repo, tokens, sender, 10*time.Minute, true)

	router := gin.New()
	NewUserHandler(svc, tokens).RegisterRoutes(router.Group("/api/v1"))

	return &apiEnv{router: router, sender: sender, svc: svc}
}

func (e *apiEnv) do(t *testing.T, method, path, token string, payload interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reqBody *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func registerBody(email, phone string) map[string]interface{} {
	return map[string]interface{}{
		"name": "Alice", "email": email, "phone": phone, "age": 30, "password": "Secret1",
	}
}

func authToken(t *testing.T, parsed map[string]interface{}) string {
	t.Helper()
	data, ok := parsed["data"].(map[string]interface{})
	require.True(t, ok, "response has no data: %v", parsed)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func adminLogin(t *testing.T, env *apiEnv) string {
	t.Helper()
	require.NoError(t, env.svc.EnsureAdmin(context.Background(), "admin@x.com", "AdminPass1", "5550000000"))

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "admin@x.com", "password": "AdminPass1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	return authToken(t, parsed)
}

func TestRegisterLoginScenario(t *testing.T) {
	env := newAPIEnv(t)

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)
	token := authToken(t, parsed)

	data := parsed["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "user", user["role"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "resetOtp")

	w, parsed = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "Secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	loginUser := parsed["data"].(map[string]interface{})["user"].(map[string]interface{})
	assert.NotEmpty(t, loginUser["lastLogin"], "login must record lastLogin")

	w, parsed = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", parsed["message"])

	w, parsed = env.do(t, http.MethodGet, "/api/v1/auth/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	profile := parsed["data"].(map[string]interface{})
	assert.Equal(t, "a@x.com", profile["email"])
}

func TestRegisterDuplicateEmailHTTP(t *testing.T) {
	env := newAPIEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5559999999"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User with this email already exists", parsed["message"])
}

func TestUpdateProfileHTTP(t *testing.T) {
	env := newAPIEnv(t)

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)
	token := authToken(t, parsed)

	w, parsed = env.do(t, http.MethodPut, "/api/v1/auth/profile", token, map[string]interface{}{
		"name": "Alice Smith",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice Smith", parsed["data"].(map[string]interface{})["name"])

	w, _ = env.do(t, http.MethodPut, "/api/v1/auth/profile", token, map[string]interface{}{"name": "A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetScenario(t *testing.T) {
	env := newAPIEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/password-reset/request", "", map[string]interface{}{
		"email": "a@x.com",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, env.sender.lastOtp, 6)

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/password-reset/reset", "", map[string]interface{}{
		"email": "a@x.com", "otp": env.sender.lastOtp, "newPassword": "NewPass1",
	})
	require.Equal(t, http.StatusOK, w.Code, "body: %v", parsed)

	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "NewPass1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email": "a@x.com", "password": "Secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, parsed = env.do(t, http.MethodPost, "/api/v1/auth/password-reset/reset", "", map[string]interface{}{
		"email": "a@x.com", "otp": env.sender.lastOtp, "newPassword": "AnotherPass1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid or expired OTP", parsed["message"])
}

func TestPasswordResetUnknownEmailHTTP(t *testing.T) {
	env := newAPIEnv(t)

	w, _ := env.do(t, http.MethodPost, "/api/v1/auth/password-reset/request", "", map[string]interface{}{
		"email": "nobody@x.com",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	env := newAPIEnv(t)
	adminToken := adminLogin(t, env)

	w, parsed := env.do(t, http.MethodPost, "/api/v1/auth/register", "", registerBody("a@x.com", "5551234567"))
	require.Equal(t, http.StatusCreated, w.Code)
	aliceToken := authToken(t, parsed)
	aliceID := parsed["data"].(map[string]interface{})["user"].(map[string]interface{})["id"].(string)

	// Role gate: a plain user is rejected with the required role named.
	w, parsed = env.do(t, http.MethodGet, "/api/v1/admin/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied. Required role: admin", parsed["message"])

	w, parsed = env.do(t, http.MethodGet, "/api/v1/admin/users?limit=10", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 2, parsed["pagination"].(map[string]interface{})["totalUsers"])

	w, parsed = env.do(t, http.MethodGet, "/api/v1/admin/users/"+aliceID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.com", parsed["data"].(map[string]interface{})["email"])

	w, _ = env.do(t, http.MethodGet, "/api/v1/admin/users/not-a-uuid", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, parsed = env.do(t, http.MethodPut, "/api/v1/admin/users/"+aliceID+"/role", adminToken, map[string]interface{}{
		"role": "moderator",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "moderator", parsed["data"].(map[string]interface{})["role"])

	w, _ = env.do(t, http.MethodPut, "/api/v1/admin/users/"+aliceID+"/status", adminToken, map[string]interface{}{
		"isActive": false,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Deactivated Alice loses access on her very next request.
	w, _ = env.do(t, http.MethodGet, "/api/v1/auth/profile", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, parsed = env.do(t, http.MethodGet, "/api/v1/admin/stats", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := parsed["data"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["totalUsers"])
	assert.EqualValues(t, 1, stats["inactiveUsers"])

	w, _ = env.do(t, http.MethodDelete, "/api/v1/admin/users/"+aliceID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = env.do(t, http.MethodGet, "/api/v1/admin/users/"+aliceID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSelfProtectionHTTP(t *testing.T) {
	env := newAPIEnv(t)
	adminToken := adminLogin(t, env)

	w, parsed := env.do(t, http.MethodGet, "/api/v1/auth/profile", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	adminID := parsed["data"].(map[string]interface{})["id"].(string)

	w, _ = env.do(t, http.MethodPut, "/api/v1/admin/users/"+adminID+"/role", adminToken, map[string]interface{}{
		"role": "user",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodPut, "/api/v1/admin/users/"+adminID+"/status", adminToken, map[string]interface{}{
		"isActive": false,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = env.do(t, http.MethodDelete, "/api/v1/admin/users/"+adminID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
