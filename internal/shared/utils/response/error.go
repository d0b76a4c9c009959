package response

import (
	"courtly/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

// RespondError maps err to its status code. Availability conflicts carry
// their structured issues in the errors field, anything else the message.
func RespondError(c *gin.Context, message string, err error) {
	code := apperrors.HTTPStatus(err)
	var details interface{} = err.Error()
	if issues := apperrors.IssuesOf(err); issues != nil {
		details = issues
	}
	RespondJSON(c, "error", code, message, nil, details)
}
