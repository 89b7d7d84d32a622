package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"user_management/internal/logger"
	"user_management/internal/middleware"
	"user_management/internal/model"
)

func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"status": "success", "data": data})
}

func respondList(c *gin.Context, data any, count int) {
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": data, "count": count})
}

func respondMessage(c *gin.Context, status int, message string, data any) {
	body := gin.H{"status": "success", "message": message}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": message})
}

// respondError maps a domain error kind to its status. Anything that is not
// a validation, not-found or conflict error is logged and hidden.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		log := logger.Get()
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Str("request_id", middleware.GetRequestID(c)).
			Msg("unhandled error")

		message := "internal server error"
		var domainErr *model.Error
		if errors.As(err, &domainErr) {
			message = domainErr.Message
		}
		c.JSON(status, gin.H{"status": "error", "message": message})
		return
	}
	c.JSON(status, gin.H{"status": "error", "message": err.Error()})
}

// parseID reads a positive integer path parameter.
func parseID(c *gin.Context, param, label string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid "+label+" ID")
		return 0, false
	}
	return id, true
}

// bindJSON decodes the body; malformed JSON is a validation failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBadRequest(c, "Invalid request: "+err.Error())
		return false
	}
	return true
}
