package handler

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pagedesk/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// respondServiceError maps service sentinels to status codes. Anything
// unrecognised is logged and reported as a 500 with fallback as the message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrVariableNotFound),
		errors.Is(err, service.ErrSettingNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrSlugConflict),
		errors.Is(err, service.ErrVariableExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrSlugRequired),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidVariableName),
		errors.Is(err, service.ErrUnknownLocation),
		errors.Is(err, service.ErrSettingKeyMissing),
		errors.Is(err, service.ErrInvalidSetting):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionExpired):
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		log.Printf("[handler] %s %s: %v", c.Request.Method, c.FullPath(), err)
		respondError(c, status, fallback)
		return
	}
	respondError(c, status, err.Error())
}

func trimmedParam(c *gin.Context, key string) string {
	return strings.TrimSpace(c.Param(key))
}
