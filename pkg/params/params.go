package params

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PositiveInt reads a path parameter as an id. On failure it writes a 400
// and returns false.
func PositiveInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil || value <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return value, true
}
