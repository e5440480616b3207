package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/gin-gonic/gin"
)

// writeError maps service errors to responses. Anything unrecognised is
// logged and reported as a bare 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "errors": ve.Fields})
		return
	}

	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, common.ErrUserAlreadyExists):
		status, msg = http.StatusBadRequest, "User already exists in the database"
	case errors.Is(err, common.ErrUserNotFound):
		status, msg = http.StatusBadRequest, "User does not exist in the database"
	case errors.Is(err, common.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, "Login with correct credentials"
	case errors.Is(err, common.ErrNoteNotFound):
		status, msg = http.StatusBadRequest, "Could not find the note"
	case errors.Is(err, common.ErrNotAuthorized):
		status, msg = http.StatusBadRequest, "not a valid user"
	default:
		s.logger.Error(c.Request.Context(), "request failed",
			"request_id", RequestIDFromContext(c),
			"error", err.Error(),
		)
	}

	c.JSON(status, gin.H{"success": false, "message": msg})
}

func badBody(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
}
