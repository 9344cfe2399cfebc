package response

import (
	"net/http"

	"anoa.com/schoolrecords/pkg/apperror"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Error standardized error response
func Error(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ValidationError answers a malformed request body. These are produced by
// the binding layer before any handler logic runs.
func ValidationError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"error": message})
}
