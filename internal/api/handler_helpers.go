package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/response"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

// HandleError logs the error and writes the envelope with the right status.
// AppError carries its own status; storage.ErrNotFound maps to 404; anything
// else uses the fallback status.
func HandleError(c *gin.Context, logger internal.Logger, err error, fallback int, msg string) {
	requestID := c.GetString("request_id")
	status := fallback

	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		status = appErr.Code
		msg = appErr.Message
	} else if errors.Is(err, storage.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		msg = msg + ": " + err.Error()
	}

	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	c.JSON(status, response.Error(msg))
}

func HandleSuccess(c *gin.Context, logger internal.Logger, status int, data interface{}) {
	logger.Debugf("[request_id=%s] %d", c.GetString("request_id"), status)
	c.JSON(status, response.Success(data))
}

func HandleList(c *gin.Context, logger internal.Logger, data interface{}, p response.Pagination) {
	logger.Debugf("[request_id=%s] list page=%d total=%d", c.GetString("request_id"), p.Current, p.Total)
	c.JSON(http.StatusOK, response.List(data, p))
}

// parseListOptions reads the limit/page query params with sane defaults.
func parseListOptions(c *gin.Context) storage.ListOptions {
	opts := storage.ListOptions{Page: 1, Limit: 20}
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		opts.Page = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		opts.Limit = v
	}
	return opts
}

// parseDays reads the stats window, defaulting to one week.
func parseDays(c *gin.Context) int {
	if v, err := strconv.Atoi(c.Query("days")); err == nil && v > 0 && v <= 365 {
		return v
	}
	return 7
}
