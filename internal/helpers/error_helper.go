package helpers

import (
	"net/http"

	"github.com/danuarts/ridehail/internal/validators"
	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   HTTPStatusText(statusCode),
		Message: customMessage,
	})
}

// RespondWithValidationErrors rejects the request with the offending
// field(s) named in the response body.
func RespondWithValidationErrors(c *gin.Context, errs validators.ValidationErrors) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   HTTPStatusText(http.StatusBadRequest),
		Message: "Validation failed.",
		Fields:  errs.Fields(),
	})
}
