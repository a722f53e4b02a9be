package db

import "time"

// ProgressLog is one body measurement check-in. Rows are append-only.
type ProgressLog struct {
	ID     uint      `gorm:"primarykey"`
	UserID uint      `gorm:"index;not null"`
	Date   time.Time `gorm:"index;not null"`
	Height *float64
	Weight *float64
}

// WorkoutLog 记录一次完成的训练
type WorkoutLog struct {
	ID          uint      `gorm:"primarykey"`
	UserID      uint      `gorm:"index;not null"`
	ExerciseID  uint      `gorm:"index;not null"`
	Reps        int       `gorm:"not null"`
	CompletedAt time.Time `gorm:"index;not null"`
}
