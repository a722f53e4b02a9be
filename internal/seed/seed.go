package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/service"
	"github.com/flexfit/internal/types"
)

// Admin describes the bootstrap account. Blank fields skip it.
type Admin struct {
	Username string
	Email    string
	Password string
}

// Report summarizes what Run changed and how the catalog splits by level.
type Report struct {
	AdminCreated     bool
	ExercisesCreated int
	ByToughness      map[string]int
}

// starterCatalog has one entry per client category.
var starterCatalog = []service.ExerciseInput{
	{
		Name:          "Dumbbell Bench Press",
		Description:   "Lie on a flat bench and press the dumbbells up until your arms are straight.",
		Toughness:     db.ToughnessMedium,
		Tags:          tagList("with equipment"),
		SuggestedReps: intPtr(12),
	},
	{
		Name:        "Push-ups",
		Description: "Keep your body in a straight line and lower your chest to the floor.",
		Toughness:   db.ToughnessMedium,
		Tags:        tagList("without equipment"),
	},
	{
		Name:          "Hill Sprints",
		Description:   "Sprint up a short hill, walk back down to recover.",
		Toughness:     db.ToughnessHard,
		Tags:          tagList("outdoor", "cardio"),
		SuggestedReps: intPtr(6),
	},
	{
		Name:          "Box Breathing",
		Description:   "Inhale, hold, exhale and hold again for four seconds each.",
		Toughness:     db.ToughnessEasy,
		Tags:          tagList("wellness"),
		SuggestedReps: intPtr(5),
	},
}

// Run ensures the admin account and adds the starter exercise of every
// category that has no exercise yet. It is safe to run repeatedly.
func Run(ctx context.Context, users *service.UserService, exercises *service.ExerciseService, admin Admin) (Report, error) {
	report := Report{ByToughness: map[string]int{}}

	created, err := users.EnsureAdmin(ctx, admin.Username, admin.Email, admin.Password)
	if err != nil {
		return report, fmt.Errorf("ensure admin: %w", err)
	}
	report.AdminCreated = created

	for _, input := range starterCatalog {
		category := input.Tags.Slice()[0]
		existing, err := exercises.FindByTag(ctx, category)
		if err != nil {
			return report, fmt.Errorf("check category %q: %w", category, err)
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := exercises.Create(ctx, input); err != nil {
			// 同名动作已存在但分类不同，跳过
			if errors.Is(err, service.ErrExerciseExists) {
				continue
			}
			return report, fmt.Errorf("create %q: %w", input.Name, err)
		}
		report.ExercisesCreated++
	}

	for _, level := range []string{db.ToughnessEasy, db.ToughnessMedium, db.ToughnessHard} {
		found, err := exercises.FindByToughness(ctx, level)
		if err != nil {
			return report, fmt.Errorf("count %s exercises: %w", level, err)
		}
		report.ByToughness[level] = len(found)
	}
	return report, nil
}

func tagList(names ...string) *types.TagList {
	list := types.TagList(names)
	return &list
}

func intPtr(v int) *int {
	return &v
}
