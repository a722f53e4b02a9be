package handler

import (
	"net/http"

	"github.com/flexfit/internal/observability"
	"github.com/gin-gonic/gin"
)

// ToggleSaved bookmarks an exercise for a user, or removes the bookmark.
func (a *API) ToggleSaved(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "exercise_id")
	if !ok {
		return
	}

	status, err := a.saved.Toggle(c.Request.Context(), userID, exerciseID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	observability.RecordToggle(status)
	c.JSON(http.StatusOK, gin.H{"status": status})
}

// ListSaved 返回用户收藏的动作 ID
func (a *API) ListSaved(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	ids, err := a.saved.ListExerciseIDs(c.Request.Context(), userID)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ids)
}
