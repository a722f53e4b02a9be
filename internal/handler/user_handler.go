package handler

import (
	"net/http"
	"time"

	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/service"
	"github.com/flexfit/internal/types"
	"github.com/gin-gonic/gin"
)

type userResponse struct {
	ID          uint    `json:"id"`
	Username    string  `json:"username"`
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	DateOfBirth string  `json:"date_of_birth"`
	Height      float64 `json:"height"`
	Weight      float64 `json:"weight"`
	Gender      string  `json:"gender"`
	Role        string  `json:"role"`
}

type updateUserRequest struct {
	Height *types.Measurement `json:"height"`
	Weight *types.Measurement `json:"weight"`
}

func newUserResponse(user *db.User) userResponse {
	dob := ""
	if t := time.Time(user.DateOfBirth); !t.IsZero() {
		dob = t.Format("2006-01-02")
	}
	return userResponse{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		DateOfBirth: dob,
		Height:      user.Height,
		Weight:      user.Weight,
		Gender:      user.Gender,
		Role:        user.Role,
	}
}

// GetUser 获取用户资料
func (a *API) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := a.users.Get(c.Request.Context(), id)
	if err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

// UpdateUser changes height and/or weight.
func (a *API) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateUserRequest
	if !bindJSON(c, &req, "invalid profile payload") {
		return
	}

	if _, err := a.users.UpdateMeasurements(c.Request.Context(), id, service.MeasurementPatch{
		Height: measurementPtr(req.Height),
		Weight: measurementPtr(req.Weight),
	}); err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully"})
}

// DeleteUser 删除用户及其记录和收藏
func (a *API) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := a.users.Delete(c.Request.Context(), id); err != nil {
		a.respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
