package handler

import (
	"errors"
	"fmt"
	"net/http"

	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"anoa.com/campquest/pkg/validator"
	"github.com/gin-gonic/gin"
)

// bindError renders validation failures with readable field messages.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
}

// serviceError renders a service failure. Rate limit violations get a 429
// with a Retry-After header; everything else goes through the shared mapper.
func serviceError(c *gin.Context, err error) {
	var rateLimitErr *service.RateLimitError
	if errors.As(err, &rateLimitErr) {
		c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		c.JSON(http.StatusTooManyRequests, gin.H{"error": rateLimitErr.Message})
		return
	}
	response.Error(c, err)
}
