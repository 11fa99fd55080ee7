package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lockchat/pkg/errors"
)

// respondError maps domain error codes onto HTTP statuses. Insufficient
// funds is the one precondition failure with its own status (402).
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
		switch appErr.Code {
		case errors.CodeNotFound:
			status = http.StatusNotFound
		case errors.CodeInvalidArgument:
			status = http.StatusBadRequest
		case errors.CodeAlreadyExists:
			status = http.StatusConflict
		case errors.CodeUnauthenticated:
			status = http.StatusUnauthorized
		case errors.CodePermissionDenied:
			status = http.StatusForbidden
		case errors.CodeFailedPrecondition:
			if errors.Is(err, errors.ErrInsufficientFunds) {
				status = http.StatusPaymentRequired
			} else {
				status = http.StatusPreconditionFailed
			}
		case errors.CodeUnavailable:
			status = http.StatusServiceUnavailable
		default:
			status = http.StatusInternalServerError
		}
	}

	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
