package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware configura los headers CORS para permitir peticiones desde
// cualquier origen. El header X-Request-ID se expone para que el cliente
// pueda reintentar escrituras de forma idempotente.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Configurar headers CORS
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept, X-Request-ID")
		c.Header("Access-Control-Expose-Headers", "X-Request-ID")
		c.Header("Access-Control-Max-Age", "3600")

		// Manejar preflight requests (OPTIONS)
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent) // No Content
			return
		}

		// Continuar con el siguiente handler
		c.Next()
	}
}
