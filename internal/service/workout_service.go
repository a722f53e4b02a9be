package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/flexfit/internal/db"
	"gorm.io/gorm"
)

// Achievement badge names.
const (
	BadgeFirstWorkout = "First Workout"
	BadgeTenWorkouts  = "10 Workouts"
	BadgeFirstCheckIn = "First Check-in"
	BadgeThreeDay     = "3-Day Streak"
	BadgeSevenDay     = "7-Day Streak"
	BadgeCollector    = "Collector"
)

// WorkoutService records completed workouts and derives streaks and badges
// from the user's workout and progress history.
type WorkoutService struct {
	db  *gorm.DB
	now func() time.Time
}

// Streak summarizes consecutive active days.
type Streak struct {
	Current int
	Longest int
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(gdb *gorm.DB) *WorkoutService {
	return &WorkoutService{db: gdb, now: time.Now}
}

// Log records a completed exercise. reps nil uses the exercise's suggestion.
func (s *WorkoutService) Log(ctx context.Context, userID, exerciseID uint, reps *int) (*db.WorkoutLog, error) {
	if err := validateReps("reps", reps); err != nil {
		return nil, err
	}

	var entry db.WorkoutLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadUser(tx, userID); err != nil {
			return err
		}
		exercise, err := loadExercise(tx, exerciseID)
		if err != nil {
			return err
		}

		entry = db.WorkoutLog{
			UserID:      userID,
			ExerciseID:  exerciseID,
			Reps:        exercise.SuggestedReps,
			CompletedAt: s.now().UTC(),
		}
		if reps != nil {
			entry.Reps = *reps
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create workout log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the user's workouts, oldest first.
func (s *WorkoutService) List(ctx context.Context, userID uint) ([]db.WorkoutLog, error) {
	gdb := s.db.WithContext(ctx)
	if _, err := loadUser(gdb, userID); err != nil {
		return nil, err
	}

	logs := []db.WorkoutLog{}
	if err := gdb.Where("user_id = ?", userID).
		Order("completed_at ASC").
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list workout logs: %w", err)
	}
	return logs, nil
}

// Streak counts consecutive UTC days with a workout or check-in, ending
// today, or yesterday when nothing was logged yet today.
func (s *WorkoutService) Streak(ctx context.Context, userID uint) (Streak, error) {
	gdb := s.db.WithContext(ctx)
	if _, err := loadUser(gdb, userID); err != nil {
		return Streak{}, err
	}

	days, err := s.activeDays(gdb, userID)
	if err != nil {
		return Streak{}, err
	}
	return computeStreak(days, s.now()), nil
}

// Achievements lists the badges the user has earned, in a fixed order.
func (s *WorkoutService) Achievements(ctx context.Context, userID uint) ([]string, error) {
	gdb := s.db.WithContext(ctx)
	if _, err := loadUser(gdb, userID); err != nil {
		return nil, err
	}

	var workouts, checkIns, saved int64
	if err := gdb.Model(&db.WorkoutLog{}).Where("user_id = ?", userID).Count(&workouts).Error; err != nil {
		return nil, fmt.Errorf("count workouts: %w", err)
	}
	if err := gdb.Model(&db.ProgressLog{}).Where("user_id = ?", userID).Count(&checkIns).Error; err != nil {
		return nil, fmt.Errorf("count check-ins: %w", err)
	}
	if err := gdb.Model(&db.SavedExercise{}).Where("user_id = ?", userID).Count(&saved).Error; err != nil {
		return nil, fmt.Errorf("count bookmarks: %w", err)
	}

	days, err := s.activeDays(gdb, userID)
	if err != nil {
		return nil, err
	}
	streak := computeStreak(days, s.now())

	badges := []string{}
	if workouts >= 1 {
		badges = append(badges, BadgeFirstWorkout)
	}
	if workouts >= 10 {
		badges = append(badges, BadgeTenWorkouts)
	}
	if checkIns >= 1 {
		badges = append(badges, BadgeFirstCheckIn)
	}
	if streak.Longest >= 3 {
		badges = append(badges, BadgeThreeDay)
	}
	if streak.Longest >= 7 {
		badges = append(badges, BadgeSevenDay)
	}
	if saved >= 5 {
		badges = append(badges, BadgeCollector)
	}
	return badges, nil
}

func (s *WorkoutService) activeDays(gdb *gorm.DB, userID uint) (map[time.Time]struct{}, error) {
	var workoutTimes []time.Time
	if err := gdb.Model(&db.WorkoutLog{}).Where("user_id = ?", userID).Pluck("completed_at", &workoutTimes).Error; err != nil {
		return nil, fmt.Errorf("load workout dates: %w", err)
	}
	var progressTimes []time.Time
	if err := gdb.Model(&db.ProgressLog{}).Where("user_id = ?", userID).Pluck("date", &progressTimes).Error; err != nil {
		return nil, fmt.Errorf("load progress dates: %w", err)
	}

	days := make(map[time.Time]struct{}, len(workoutTimes)+len(progressTimes))
	for _, ts := range append(workoutTimes, progressTimes...) {
		days[utcDay(ts)] = struct{}{}
	}
	return days, nil
}

func computeStreak(days map[time.Time]struct{}, now time.Time) Streak {
	if len(days) == 0 {
		return Streak{}
	}

	cursor := utcDay(now)
	if _, ok := days[cursor]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}
	current := 0
	for {
		if _, ok := days[cursor]; !ok {
			break
		}
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	sorted := make([]time.Time, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDate(0, 0, 1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	if current > longest {
		longest = current
	}
	return Streak{Current: current, Longest: longest}
}

func utcDay(ts time.Time) time.Time {
	u := ts.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
