package handler

import (
	"net/http"
	"time"

	"github.com/flexfit/internal/observability"
	"github.com/gin-gonic/gin"
)

type workoutResponse struct {
	ID          uint      `json:"id"`
	ExerciseID  uint      `json:"exercise_id"`
	Reps        int       `json:"reps"`
	CompletedAt time.Time `json:"completed_at"`
}

// LogWorkout records a completed exercise; ?reps= overrides the suggestion.
func (a *API) LogWorkout(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "exercise_id")
	if !ok {
		return
	}

	reps, err := queryInt(c, "reps")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.workouts.Log(c.Request.Context(), userID, exerciseID, reps)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	observability.RecordWorkout()
	c.JSON(http.StatusOK, gin.H{"message": "Workout logged successfully", "workout_log_id": entry.ID})
}

// ListWorkouts 返回用户的训练记录
func (a *API) ListWorkouts(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	logs, err := a.workouts.List(c.Request.Context(), userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	response := make([]workoutResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, workoutResponse{
			ID:          entry.ID,
			ExerciseID:  entry.ExerciseID,
			Reps:        entry.Reps,
			CompletedAt: entry.CompletedAt.UTC(),
		})
	}
	c.JSON(http.StatusOK, response)
}

// GetStreak reports the current and longest activity streaks.
func (a *API) GetStreak(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	streak, err := a.workouts.Streak(c.Request.Context(), userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"streak": streak.Current, "longest": streak.Longest})
}

// GetAchievements lists the badges a user has earned.
func (a *API) GetAchievements(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	badges, err := a.workouts.Achievements(c.Request.Context(), userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": badges})
}
