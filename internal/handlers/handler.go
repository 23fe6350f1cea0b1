package handlers

import (
	"net/http"

	"deployhub/internal/responses"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// userIDFrom pulls the authenticated user ID set by the auth middleware.
// When it is missing the request is aborted with a 401.
func userIDFrom(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("userId")
	if !exists {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		return uuid.Nil, false
	}

	return id, true
}

// pathUUID parses a UUID path parameter, failing the request with a 400 when
// it is malformed.
func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}
