package handler

import (
	"net/http"
	"strconv"

	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/service"
	"github.com/flexfit/internal/types"
	"github.com/gin-gonic/gin"
)

type exerciseRequest struct {
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Toughness     string         `json:"toughness"`
	MediaURL      string         `json:"media_url"`
	Tags          *types.TagList `json:"tags"`
	SuggestedReps *int           `json:"suggested_reps"`
}

type exercisePatchRequest struct {
	Name          *string        `json:"name"`
	Description   *string        `json:"description"`
	Toughness     *string        `json:"toughness"`
	MediaURL      *string        `json:"media_url"`
	Tags          *types.TagList `json:"tags"`
	SuggestedReps *int           `json:"suggested_reps"`
}

type exerciseResponse struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Toughness     string   `json:"toughness"`
	MediaURL      string   `json:"media_url"`
	Tags          []string `json:"tags"`
	SuggestedReps int      `json:"suggested_reps"`
}

type exerciseDetailResponse struct {
	exerciseResponse
	DescriptionHTML string `json:"description_html"`
	Saved           *bool  `json:"saved,omitempty"`
}

func newExerciseResponse(exercise *db.Exercise) exerciseResponse {
	return exerciseResponse{
		ID:            exercise.ID,
		Name:          exercise.Name,
		Description:   exercise.Description,
		Toughness:     exercise.Toughness,
		MediaURL:      exercise.MediaURL,
		Tags:          db.TagNames(exercise.Tags),
		SuggestedReps: exercise.SuggestedReps,
	}
}

// ListExercises returns the catalog, optionally filtered by name, tag and toughness.
func (a *API) ListExercises(c *gin.Context) {
	exercises, err := a.exercises.List(c.Request.Context(), service.ExerciseFilter{
		Search:    c.Query("search_query"),
		Tag:       c.Query("tag"),
		Toughness: c.Query("toughness"),
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	response := make([]exerciseResponse, 0, len(exercises))
	for i := range exercises {
		response = append(response, newExerciseResponse(&exercises[i]))
	}
	c.JSON(http.StatusOK, response)
}

// CreateExercise 新增动作
func (a *API) CreateExercise(c *gin.Context) {
	var req exerciseRequest
	if !bindJSON(c, &req, "invalid exercise payload") {
		return
	}

	exercise, err := a.exercises.Create(c.Request.Context(), service.ExerciseInput{
		Name:          req.Name,
		Description:   req.Description,
		Toughness:     req.Toughness,
		MediaURL:      req.MediaURL,
		Tags:          req.Tags,
		SuggestedReps: req.SuggestedReps,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Exercise added successfully", "exercise_id": exercise.ID})
}

// GetExercise returns one exercise with its rendered description. With
// ?user_id= the response also reports whether that user saved it.
func (a *API) GetExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	exercise, err := a.exercises.Get(ctx, id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	rendered, err := renderMarkdown(exercise.Description)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	response := exerciseDetailResponse{
		exerciseResponse: newExerciseResponse(exercise),
		DescriptionHTML:  rendered,
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondError(c, http.StatusBadRequest, "invalid user_id")
			return
		}
		saved, err := a.saved.IsSaved(ctx, uint(userID), id)
		if err != nil {
			a.respondServiceError(c, err)
			return
		}
		response.Saved = &saved
	}

	c.JSON(http.StatusOK, response)
}

// UpdateExercise 局部更新动作并返回最新数据
func (a *API) UpdateExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req exercisePatchRequest
	if !bindJSON(c, &req, "invalid exercise payload") {
		return
	}

	exercise, err := a.exercises.Update(c.Request.Context(), id, service.ExercisePatch{
		Name:          req.Name,
		Description:   req.Description,
		Toughness:     req.Toughness,
		MediaURL:      req.MediaURL,
		Tags:          req.Tags,
		SuggestedReps: req.SuggestedReps,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newExerciseResponse(exercise))
}

// DeleteExercise 删除动作
func (a *API) DeleteExercise(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.exercises.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Exercise deleted successfully"})
}

// GetTags 获取标签列表及其动作数量
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	response := make([]gin.H, 0, len(tags))
	for _, tag := range tags {
		response = append(response, gin.H{
			"id":             tag.ID,
			"name":           tag.Name,
			"exercise_count": tag.ExerciseCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"tags": response})
}
