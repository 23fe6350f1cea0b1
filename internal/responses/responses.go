package responses

import (
	"errors"
	"net/http"

	"deployhub/internal/apperror"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func Fail(c *gin.Context, statusCode int, err error, message string) {
	resp := APIResponse{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode, resp)
}

// Error maps a service error onto the right HTTP status via the apperror
// sentinels. Anything unrecognized is a 500 with a generic message so
// internals don't leak.
func Error(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		Fail(c, http.StatusBadRequest, err, "Validation failed")
	case errors.Is(err, apperror.ErrUnauthorized):
		Fail(c, http.StatusUnauthorized, err, "Unauthorized")
	case errors.Is(err, apperror.ErrForbidden):
		Fail(c, http.StatusForbidden, err, "Access denied")
	case errors.Is(err, apperror.ErrNotFound):
		Fail(c, http.StatusNotFound, err, "Not found")
	case errors.Is(err, apperror.ErrConflict):
		Fail(c, http.StatusConflict, err, "Conflict")
	case errors.Is(err, apperror.ErrExpired):
		Fail(c, http.StatusGone, err, "Expired")
	case errors.Is(err, apperror.ErrUpstream), errors.Is(err, apperror.ErrEmptyResponse):
		Fail(c, http.StatusBadGateway, err, "Upstream service unavailable")
	default:
		Fail(c, http.StatusInternalServerError, nil, "Internal server error")
	}
}
