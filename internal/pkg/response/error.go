package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nekogravitycat/fleet-availability-backend/internal/pkg/apperror"
)

// ErrorResponse defines the JSON structure for error responses.
// Details is populated by handlers that have structured context to attach,
// such as the conflict set behind a 409.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// Error sends a JSON error response.
// It checks if the error is an AppError to determine the status code.
// If it's not an AppError, it defaults to 500 Internal Server Error.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// ErrorWithDetails sends a JSON error response with a structured payload attached.
func ErrorWithDetails(c *gin.Context, code int, message string, details any) {
	c.JSON(code, ErrorResponse{Error: message, Details: details})
}
