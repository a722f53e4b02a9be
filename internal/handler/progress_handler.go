package handler

import (
	"net/http"
	"time"

	"github.com/flexfit/internal/service"
	"github.com/gin-gonic/gin"
)

type progressResponse struct {
	ID     uint      `json:"id"`
	Date   time.Time `json:"date"`
	Height *float64  `json:"height"`
	Weight *float64  `json:"weight"`
}

// LogProgress records a check-in from the height and weight query parameters.
func (a *API) LogProgress(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	height, err := queryMeasurement(c, "height")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	weight, err := queryMeasurement(c, "weight")
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := a.progress.Log(c.Request.Context(), userID, service.ProgressInput{Height: height, Weight: weight})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Progress logged successfully", "progress_id": entry.ID})
}

// ListProgress returns a user's check-ins ordered by date.
func (a *API) ListProgress(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	logs, err := a.progress.List(c.Request.Context(), userID, c.Query("order"))
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	response := make([]progressResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, progressResponse{
			ID:     entry.ID,
			Date:   entry.Date.UTC(),
			Height: entry.Height,
			Weight: entry.Weight,
		})
	}
	c.JSON(http.StatusOK, response)
}
