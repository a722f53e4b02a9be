package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/observability"
	"github.com/flexfit/internal/service"
	"github.com/flexfit/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type signupRequest struct {
	Username    string             `json:"username"`
	FullName    string             `json:"full_name"`
	Email       string             `json:"email"`
	Password    string             `json:"password"`
	DateOfBirth string             `json:"date_of_birth"`
	DOB         string             `json:"dob"`
	Height      *types.Measurement `json:"height"`
	Weight      *types.Measurement `json:"weight"`
	Gender      string             `json:"gender"`
	Role        *string            `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup 注册新账号
func (a *API) Signup(c *gin.Context) {
	var req signupRequest
	if !bindJSON(c, &req, "invalid signup payload") {
		return
	}

	dob := req.DateOfBirth
	if strings.TrimSpace(dob) == "" {
		dob = req.DOB
	}

	user, err := a.users.Signup(c.Request.Context(), service.SignupInput{
		Username:    req.Username,
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: dob,
		Height:      measurementPtr(req.Height),
		Weight:      measurementPtr(req.Weight),
		Gender:      req.Gender,
		Role:        req.Role,
	})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	observability.RecordSignup()
	a.logger.Info("user signed up", zap.Uint("user_id", user.ID))
	c.JSON(http.StatusOK, gin.H{"message": "User created successfully", "user_id": user.ID})
}

// Login 校验凭据并签发 bearer token
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "invalid login payload") {
		return
	}

	user, err := a.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			observability.RecordLoginFailure()
		}
		a.respondServiceError(c, err)
		return
	}

	token, err := a.tokens.Issue(auth.Identity{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"expires_in":   int(a.tokens.TTL().Seconds()),
		"user":         newUserResponse(user),
	})
}

// Logout only acknowledges; tokens are discarded by the client.
func (a *API) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Protected returns the user behind a verified bearer token.
func (a *API) Protected(c *gin.Context) {
	claims, ok := auth.FromContext(c)
	if !ok {
		respondError(c, http.StatusForbidden, "not authenticated")
		return
	}

	user, err := a.users.GetByEmail(c.Request.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			respondError(c, http.StatusForbidden, "invalid or expired token")
			return
		}
		a.respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Hello, " + user.Username,
		"user":    newUserResponse(user),
	})
}
