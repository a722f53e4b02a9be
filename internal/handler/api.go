package handler

import (
	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/service"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	users     *service.UserService
	exercises *service.ExerciseService
	tags      *service.TagService
	saved     *service.SavedExerciseService
	progress  *service.ProgressService
	workouts  *service.WorkoutService
	tokens    *auth.TokenIssuer
	logger    *zap.Logger
}

// Options configures NewAPI.
type Options struct {
	Hasher          auth.Hasher
	Tokens          *auth.TokenIssuer
	Logger          *zap.Logger
	DefaultMediaURL string
}

// NewAPI 构造共享服务的 handler 集合
func NewAPI(gdb *gorm.DB, opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &API{
		users:     service.NewUserService(gdb, opts.Hasher),
		exercises: service.NewExerciseService(gdb, opts.DefaultMediaURL),
		tags:      service.NewTagService(gdb),
		saved:     service.NewSavedExerciseService(gdb),
		progress:  service.NewProgressService(gdb),
		workouts:  service.NewWorkoutService(gdb),
		tokens:    opts.Tokens,
		logger:    logger,
	}
}

// Tokens exposes the issuer so the router can guard protected routes.
func (a *API) Tokens() *auth.TokenIssuer {
	return a.tokens
}
