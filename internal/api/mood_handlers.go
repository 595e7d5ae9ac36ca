package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/response"
	"github.com/roydza27/MindEaseLite-sub000/internal/service"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

func PostMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.MoodEntryRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateMoodEntryRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		entry, err := service.CreateMoodEntry(c.Request.Context(), app.Moods(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save mood entry")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusCreated, entry)
	}
}

func GetMoods(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		opts := parseListOptions(c)

		entries, total, err := app.Moods().ListMoodEntries(c.Request.Context(), user.ID, opts)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch mood entries")
			return
		}
		HandleList(c, app.Logger(), entries, response.NewPagination(opts.Page, opts.Limit, total))
	}
}

func GetMoodStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		days := parseDays(c)

		entries, _, err := app.Moods().ListMoodEntries(c.Request.Context(), user.ID, storage.ListOptions{})
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch mood entries for stats")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, service.CalculateMoodStats(entries, days))
	}
}

func PutMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.MoodEntryUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateMoodEntryUpdateRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		entry, err := service.UpdateMoodEntry(c.Request.Context(), app.Moods(), user, c.Param("id"), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to update mood entry")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, entry)
	}
}

func DeleteMood(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		if err := app.Moods().DeleteMoodEntry(c.Request.Context(), user.ID, c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to delete mood entry")
			return
		}
		c.JSON(http.StatusOK, response.Deleted("mood entry deleted"))
	}
}
