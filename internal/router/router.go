package router

import (
	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/handler"
	"github.com/flexfit/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures the gin engine and routes.
func SetupRouter(api *handler.API, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	// recovery sits innermost so panics still reach the access log and metrics.
	r.Use(requestID(), accessLog(logger), observability.Middleware(), recovery(logger))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Accounts
	r.POST("/signup", api.Signup)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)
	r.GET("/protected", auth.Required(api.Tokens()), api.Protected)

	r.GET("/user/:id", api.GetUser)
	r.PUT("/user/:id/update", api.UpdateUser)
	r.DELETE("/user/:id", api.DeleteUser)

	// Catalog
	r.GET("/exercises", api.ListExercises)
	r.POST("/add_exercise", api.CreateExercise)
	r.GET("/exercise/:id", api.GetExercise)
	r.PUT("/edit_exercise/:id", api.UpdateExercise)
	r.DELETE("/exercises/:id", api.DeleteExercise)
	r.GET("/tags", api.GetTags)

	// Bookmarks
	r.POST("/toggle_saved/:user_id/:exercise_id", api.ToggleSaved)
	r.GET("/saved_exercises/:user_id", api.ListSaved)

	// Progress and workouts
	r.POST("/progress/:user_id", api.LogProgress)
	r.GET("/progress/:user_id", api.ListProgress)
	r.POST("/log_workout/:user_id/:exercise_id", api.LogWorkout)
	r.GET("/workout_logs/:user_id", api.ListWorkouts)
	r.GET("/streak/:user_id", api.GetStreak)
	r.POST("/streak/:user_id", api.GetStreak)
	r.GET("/achievements/:user_id", api.GetAchievements)

	return r
}
