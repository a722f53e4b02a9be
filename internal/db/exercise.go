package db

import "time"

// Toughness levels accepted for an exercise.
const (
	ToughnessEasy   = "Easy"
	ToughnessMedium = "Medium"
	ToughnessHard   = "Hard"
)

// DefaultSuggestedReps applies when an exercise is created without reps.
const DefaultSuggestedReps = 10

// Exercise is a catalog entry. Tags are linked through exercise_tags.
type Exercise struct {
	ID            uint   `gorm:"primarykey"`
	Name          string `gorm:"uniqueIndex;not null"`
	NameLower     string `gorm:"index"` // Unicode-folded Name for search
	Description   string
	Toughness     string `gorm:"index;not null"`
	MediaURL      string
	SuggestedReps int   `gorm:"not null"`
	Tags          []Tag `gorm:"many2many:exercise_tags;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SavedExercise is a user's bookmark on an exercise; one row per pair.
type SavedExercise struct {
	ID         uint     `gorm:"primarykey"`
	UserID     uint     `gorm:"not null;uniqueIndex:idx_saved_user_exercise"`
	ExerciseID uint     `gorm:"not null;uniqueIndex:idx_saved_user_exercise"`
	Exercise   Exercise `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time
}
