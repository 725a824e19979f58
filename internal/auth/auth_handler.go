package auth

import (
	"net/http"
	"time"

	"cart-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	jwtManager *JWTManager
	logger     *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(jwtManager *JWTManager, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// LoginRequest represents the login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"alice123"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token     string    `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Type      string    `json:"type" example:"Bearer"`
	ExpiresIn int       `json:"expires_in" example:"600"`
	ExpiresAt time.Time `json:"expires_at" example:"2024-01-15T12:00:00Z"`
}

type account struct {
	password string
	userID   int64
}

// Prototype accounts; a real deployment validates against a user store
var accounts = map[string]account{
	"alice": {password: "alice123", userID: 1},
	"bob":   {password: "bob123", userID: 2},
	"admin": {password: "admin123", userID: 3},
}

// Login handles POST /auth/login
// @Summary      Login and get JWT token
// @Description  Autentica un usuario y retorna un token JWT para los endpoints del carrito. Usuarios disponibles: alice/alice123, bob/bob123, admin/admin123
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      LoginRequest   true  "Login credentials"
// @Success      200      {object}  LoginResponse  "Token issued"
// @Failure      400      {object}  errors.StandardError  "Missing username or password"
// @Failure      401      {object}  errors.StandardError  "Invalid credentials"
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid login request", zap.Error(err))
		c.Error(errors.NewValidationError("invalid request", "username or password"))
		c.Abort()
		return
	}

	acct, ok := h.validateCredentials(req.Username, req.Password)
	if !ok {
		h.logger.Warn("Invalid credentials",
			zap.String("username", req.Username),
		)
		c.Error(errors.NewUnauthorized("invalid credentials", "username or password incorrect"))
		c.Abort()
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, acct.userID)
	if err != nil {
		h.logger.Error("Failed to generate token", zap.Error(err))
		c.Error(errors.NewInternalError("failed to generate token", err))
		c.Abort()
		return
	}

	lifetime := h.jwtManager.Lifetime()
	expiresAt := time.Now().Add(lifetime)
	response := LoginResponse{
		Token:     token,
		Type:      "Bearer",
		ExpiresIn: int(lifetime.Seconds()),
		ExpiresAt: expiresAt,
	}

	h.logger.Info("User logged in successfully",
		zap.String("username", req.Username),
		zap.Time("expires_at", expiresAt),
	)

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) validateCredentials(username, password string) (account, bool) {
	acct, exists := accounts[username]
	if !exists || acct.password != password {
		return account{}, false
	}
	return acct, true
}
