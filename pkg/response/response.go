package response

import "github.com/gin-gonic/gin"

// Error writes the error body the API contract uses everywhere: a single
// human-readable message under the "error" key.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// ErrorWithDetails is Error plus a per-field breakdown, used for
// validation failures on request binding.
func ErrorWithDetails(c *gin.Context, status int, msg string, details map[string]string) {
	if len(details) == 0 {
		Error(c, status, msg)
		return
	}
	c.JSON(status, gin.H{"error": msg, "details": details})
}

// OK writes a 200 with the given body.
func OK(c *gin.Context, body gin.H) {
	c.JSON(200, body)
}
