package custom_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IsClientError reports whether err maps to a 4xx response.
func IsClientError(err error) bool {
	code := StatusCode(err)
	return code >= http.StatusBadRequest && code < http.StatusInternalServerError
}

// Respond writes err as the JSON error body and aborts the chain.
func Respond(c *gin.Context, err error, fallback string) {
	body := gin.H{"error": PublicMessage(err, fallback)}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.Property != "" {
		body["property"] = validationErr.Property
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusCode(err), body)
}
