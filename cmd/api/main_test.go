package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cart-service/internal/auth"
	"cart-service/internal/cache"
	"cart-service/internal/cart"
	"cart-service/internal/events"
	"cart-service/internal/repository"
	"cart-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	shared := cache.NewInMemoryCache(logger)

	return newRouter(dependencies{
		logger:          logger,
		jwtManager:      auth.NewJWTManager("test-secret", time.Minute, logger),
		catalog:         repository.NewInMemoryInventoryRepository(repository.SampleCatalog()...),
		cartStore:       cart.NewInMemoryStore(cart.DefaultTTL),
		publisher:       events.NewLogEventPublisher(logger),
		sharedCache:     shared,
		listingCache:    shared,
		listingCacheTTL: time.Minute,
	})
}

func login(t *testing.T, router *gin.Engine, username, password string) string {
	t.Helper()

	body, _ := json.Marshal(auth.LoginRequest{Username: username, Password: password})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp auth.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func do(router *gin.Engine, method, path, token, requestID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID != "" {
		req.Header.Set(middleware.RequestIDHeader, requestID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"cart-service"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestViewStore(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/view/store", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"name":"Widget","price":"$9.99","in_stock":true},
		{"name":"Gadget","price":"$24.50","in_stock":true},
		{"name":"Gizmo","price":"$5.00","in_stock":false}
	]`, w.Body.String())

	// second call is served from the listing cache
	w = do(router, http.MethodGet, "/view/store", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Widget")
}

func TestCartFlow(t *testing.T) {
	router := setupTestRouter(t)
	token := login(t, router, "alice", "alice123")

	w := do(router, http.MethodPost, "/cart/add/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Item: Widget was added to cart!"}`, w.Body.String())

	w = do(router, http.MethodPost, "/cart/add/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/cart/view", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Widget","price":9.99,"quantity":2}]`, w.Body.String())

	w = do(router, http.MethodDelete, "/cart/delete/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"The item was removed from your cart."}`, w.Body.String())

	w = do(router, http.MethodGet, "/cart/view", token, "")
	assert.JSONEq(t, `[{"id":1,"name":"Widget","price":9.99,"quantity":1}]`, w.Body.String())

	w = do(router, http.MethodDelete, "/cart/delete/1", token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodGet, "/cart/view", token, "")
	assert.JSONEq(t, `[]`, w.Body.String())

	w = do(router, http.MethodDelete, "/cart/delete/1", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CartItemNotFound")
}

func TestCartErrors(t *testing.T) {
	router := setupTestRouter(t)
	token := login(t, router, "bob", "bob123")

	w := do(router, http.MethodPost, "/cart/add/99", token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "There is no item with the id: 99")

	w = do(router, http.MethodPost, "/cart/add/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(router, http.MethodGet, "/cart/view", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(router, http.MethodGet, "/cart/view", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	router := setupTestRouter(t)
	alice := login(t, router, "alice", "alice123")
	bob := login(t, router, "bob", "bob123")

	require.Equal(t, http.StatusOK, do(router, http.MethodPost, "/cart/add/2", alice, "").Code)

	w := do(router, http.MethodGet, "/cart/view", bob, "")
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestAddToCart_RetriedRequestIsReplayed(t *testing.T) {
	router := setupTestRouter(t)
	token := login(t, router, "alice", "alice123")

	first := do(router, http.MethodPost, "/cart/add/1", token, "retry-1")
	second := do(router, http.MethodPost, "/cart/add/1", token, "retry-1")
	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.JSONEq(t, first.Body.String(), second.Body.String())

	w := do(router, http.MethodGet, "/cart/view", token, "")
	assert.JSONEq(t, `[{"id":1,"name":"Widget","price":9.99,"quantity":1}]`, w.Body.String())
}

func TestLogin_BadCredentials(t *testing.T) {
	router := setupTestRouter(t)

	body, _ := json.Marshal(auth.LoginRequest{Username: "alice", Password: "nope"})
	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSwaggerDocs(t *testing.T) {
	router := setupTestRouter(t)

	w := do(router, http.MethodGet, "/swagger/doc.json", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/cart/add/{id}")
}
