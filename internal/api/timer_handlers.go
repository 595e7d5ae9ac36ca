package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/response"
	"github.com/roydza27/MindEaseLite-sub000/internal/service"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

func PostTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.TimerSessionRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateTimerSessionRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		session, err := service.CreateTimerSession(c.Request.Context(), app.Timers(), user, &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to save timer session")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusCreated, session)
	}
}

func GetTimers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		f := storage.TimerFilter{ListOptions: parseListOptions(c)}
		if v := c.Query("completed"); v != "" {
			if completed, err := strconv.ParseBool(v); err == nil {
				f.Completed = &completed
			}
		}

		sessions, total, err := app.Timers().ListTimerSessions(c.Request.Context(), user.ID, f)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch timer sessions")
			return
		}
		HandleList(c, app.Logger(), sessions, response.NewPagination(f.Page, f.Limit, total))
	}
}

func GetTimerStats(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)
		days := parseDays(c)

		sessions, _, err := app.Timers().ListTimerSessions(c.Request.Context(), user.ID, storage.TimerFilter{})
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to fetch timer sessions for stats")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, service.CalculateTimerStats(sessions, days))
	}
}

func PutTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.TimerSessionUpdateRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := service.ValidateTimerSessionUpdateRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, http.StatusBadRequest, "Validation failed")
			return
		}

		session, err := service.UpdateTimerSession(c.Request.Context(), app.Timers(), user, c.Param("id"), &body)
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to update timer session")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, session)
	}
}

func CompleteTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		session, err := service.CompleteTimerSession(c.Request.Context(), app.Timers(), user, c.Param("id"))
		if err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to complete timer session")
			return
		}
		HandleSuccess(c, app.Logger(), http.StatusOK, session)
	}
}

func DeleteTimer(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		if err := app.Timers().DeleteTimerSession(c.Request.Context(), user.ID, c.Param("id")); err != nil {
			HandleError(c, app.Logger(), err, http.StatusInternalServerError, "Failed to delete timer session")
			return
		}
		c.JSON(http.StatusOK, response.Deleted("timer session deleted"))
	}
}
