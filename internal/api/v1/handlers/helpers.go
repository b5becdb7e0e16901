package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meetingmind/internal/api/errors"
	"meetingmind/internal/api/middleware"
)

func userID(c *gin.Context) string {
	id, _ := middleware.CurrentUser(c)
	return id
}

// pathID reads a uuid path parameter, writing a 400 when it is malformed
func pathID(c *gin.Context, name, resource string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		middleware.HandleError(c, errors.NewValidationError("Validation failed", map[string]string{
			name: "invalid " + resource + " id",
		}))
		return "", false
	}
	return raw, true
}
