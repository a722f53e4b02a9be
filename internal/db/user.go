package db

import (
	"time"

	"gorm.io/datatypes"
)

// Roles a user account can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a FlexFit account. Height is centimetres, weight kilograms.
type User struct {
	ID           uint   `gorm:"primarykey"`
	Username     string `gorm:"uniqueIndex;not null"`
	FullName     string
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	DateOfBirth  datatypes.Date
	Height       float64
	Weight       float64
	Gender       string
	Role         string `gorm:"not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	ProgressLogs   []ProgressLog   `gorm:"constraint:OnDelete:CASCADE"`
	SavedExercises []SavedExercise `gorm:"constraint:OnDelete:CASCADE"`
	WorkoutLogs    []WorkoutLog    `gorm:"constraint:OnDelete:CASCADE"`
}
