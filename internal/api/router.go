package api

import (
	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
)

// NewRouter wires the full route table. Shared between cmd/server and tests.
func NewRouter(app App) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())

	public := r.Group("/api")
	public.POST("/users/register", RegisterUser(app))
	public.POST("/users/login", LoginUser(app))

	protected := r.Group("/api")
	protected.Use(auth.Middleware(app.Tokens(), app.Users(), app.Logger()))

	protected.GET("/users/me", GetMe(app))
	protected.PUT("/users/settings", UpdateSettings(app))

	protected.POST("/timers", PostTimer(app))
	protected.GET("/timers", GetTimers(app))
	protected.GET("/timers/stats", GetTimerStats(app))
	protected.PUT("/timers/:id", PutTimer(app))
	protected.PUT("/timers/:id/complete", CompleteTimer(app))
	protected.DELETE("/timers/:id", DeleteTimer(app))

	protected.POST("/moods", PostMood(app))
	protected.GET("/moods", GetMoods(app))
	protected.GET("/moods/stats", GetMoodStats(app))
	protected.PUT("/moods/:id", PutMood(app))
	protected.DELETE("/moods/:id", DeleteMood(app))

	return r
}
