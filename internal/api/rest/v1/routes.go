package v1

import (
	"time"

	"github.com/MGTheTrain/rsa-vault/internal/domain/keys"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine,
	keyPairGenerationService keys.KeyPairGenerationService,
	keyPairMetadataService keys.KeyPairMetadataService,
	cipherService keys.CipherService) {

	v1 := r.Group(BasePath)

	keyHandler := NewKeyHandler(keyPairGenerationService, keyPairMetadataService, cipherService)
	v1.POST("/keys", keyHandler.Generate)
	v1.GET("/keys", keyHandler.ListMetadata)
	v1.GET("/keys/:id", keyHandler.GetMetadataByID)
	v1.DELETE("/keys/:id", keyHandler.DeleteByID)
	v1.POST("/keys/:id/encrypt", keyHandler.EncryptText)
	v1.POST("/keys/:id/decrypt", keyHandler.DecryptText)
}

// CORSMiddleware builds the CORS handler for the given origins. An empty list allows any origin.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}

	if len(allowedOrigins) == 0 || containsWildcard(allowedOrigins) {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
		config.AllowCredentials = true
	}

	return cors.New(config)
}

func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
