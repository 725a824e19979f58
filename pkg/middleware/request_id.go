package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"cart-service/internal/cache"
	apperrors "cart-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-ID"
	// RequestIDContextKey is the context key for request ID
	RequestIDContextKey = "request_id"

	// DefaultIdempotencyTTL is how long a replayable response is kept
	DefaultIdempotencyTTL = 5 * time.Minute

	idempotencyKeyPrefix = "idempotency:"
	inFlightKeyPrefix    = "idempotency:inflight:"
	// inFlightTTL bounds how long a crashed request can hold its claim
	inFlightTTL = 30 * time.Second
)

var ErrRequestIDNotFound = errors.New("request ID not found")

// RequestIDStore stores processed request IDs for idempotency
type RequestIDStore interface {
	Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error
	// Get returns ErrRequestIDNotFound when nothing is stored for requestID
	Get(ctx context.Context, requestID string) ([]byte, error)
	// Claim marks requestID as in flight; false means another request holds it
	Claim(ctx context.Context, requestID string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, requestID string) error
}

// CacheRequestIDStore keeps responses in the shared cache under idempotency:{key}
type CacheRequestIDStore struct {
	cache cache.Cache
}

func NewCacheRequestIDStore(c cache.Cache) *CacheRequestIDStore {
	return &CacheRequestIDStore{cache: c}
}

func (s *CacheRequestIDStore) Store(ctx context.Context, requestID string, response []byte, ttl time.Duration) error {
	return s.cache.Set(ctx, idempotencyKeyPrefix+requestID, response, ttl)
}

func (s *CacheRequestIDStore) Get(ctx context.Context, requestID string) ([]byte, error) {
	data, err := s.cache.Get(ctx, idempotencyKeyPrefix+requestID)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrRequestIDNotFound
	}
	return data, err
}

func (s *CacheRequestIDStore) Claim(ctx context.Context, requestID string, ttl time.Duration) (bool, error) {
	return s.cache.SetNX(ctx, inFlightKeyPrefix+requestID, []byte("1"), ttl)
}

func (s *CacheRequestIDStore) Release(ctx context.Context, requestID string) error {
	return s.cache.Delete(ctx, inFlightKeyPrefix+requestID)
}

// RequestIDMiddleware extracts or generates X-Request-ID header
func RequestIDMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
			logger.Debug("Generated new request ID",
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
			)
		}

		c.Set(RequestIDContextKey, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()
	}
}

// GetRequestID retrieves the request ID from the Gin context
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDContextKey)
}

func isWrite(method string) bool {
	return method == http.MethodPost || method == http.MethodPut ||
		method == http.MethodDelete || method == http.MethodPatch
}

// idempotencyKey scopes a request id to the caller and the route it was sent to,
// so a reused id never replays another user's or another operation's response
func idempotencyKey(c *gin.Context) string {
	requestID := GetRequestID(c)
	if requestID == "" {
		return ""
	}
	key := requestID + ":" + c.Request.Method + ":" + c.Request.URL.Path
	if identity, ok := GetIdentity(c); ok {
		key += ":" + identity.Subject + "_" + strconv.FormatInt(identity.UserID, 10)
	}
	return key
}

// IdempotencyMiddleware replays the stored response of a write already seen with the same X-Request-ID.
// A duplicate arriving while the first is still running gets 409 RequestInProgress.
func IdempotencyMiddleware(store RequestIDStore, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		key := idempotencyKey(c)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if replay(c, store, key, logger) {
			return
		}

		claimed, err := store.Claim(ctx, key, inFlightTTL)
		if err != nil {
			// fail open
			logger.Warn("Error claiming idempotency key",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			c.Next()
			return
		}
		if !claimed {
			logger.Warn("Request with same ID already in progress",
				zap.String("request_id", GetRequestID(c)),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusConflict, apperrors.NewRequestInProgress(GetRequestID(c)))
			return
		}
		defer func() {
			if err := store.Release(context.Background(), key); err != nil {
				logger.Warn("Failed to release idempotency key",
					zap.String("request_id", GetRequestID(c)),
					zap.Error(err),
				)
			}
		}()

		// the previous holder may have stored its response just before releasing
		if replay(c, store, key, logger) {
			return
		}

		c.Next()
	}
}

// replay writes the stored response for key, if any, and aborts the chain
func replay(c *gin.Context, store RequestIDStore, key string, logger *zap.Logger) bool {
	cached, err := store.Get(c.Request.Context(), key)
	switch {
	case err == nil && len(cached) > 0:
		logger.Info("Duplicate request detected, returning cached response",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
		c.Abort()
		return true
	case err != nil && !errors.Is(err, ErrRequestIDNotFound):
		// fail open
		logger.Warn("Error reading idempotency record",
			zap.String("request_id", GetRequestID(c)),
			zap.Error(err),
		)
	}
	return false
}

// StoreResponseMiddleware records successful write responses for IdempotencyMiddleware
func StoreResponseMiddleware(store RequestIDStore, logger *zap.Logger, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isWrite(c.Request.Method) {
			c.Next()
			return
		}

		key := idempotencyKey(c)
		if key == "" {
			c.Next()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status < 200 || status >= 300 || len(writer.body) == 0 {
			return
		}

		if err := store.Store(c.Request.Context(), key, writer.body, ttl); err != nil {
			logger.Warn("Failed to store response for idempotency",
				zap.String("request_id", GetRequestID(c)),
				zap.Error(err),
			)
			return
		}
		logger.Debug("Stored response for idempotency",
			zap.String("request_id", GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
		)
	}
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
