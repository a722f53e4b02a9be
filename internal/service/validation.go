package service

import (
	"strings"
	"time"

	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/types"
	"github.com/go-playground/validator/v10"
)

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

const dateLayout = "2006-01-02"

var validate = validator.New()

// NormalizeToughness maps a case-insensitive level onto Easy/Medium/Hard.
func NormalizeToughness(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "easy":
		return db.ToughnessEasy, true
	case "medium":
		return db.ToughnessMedium, true
	case "hard":
		return db.ToughnessHard, true
	}
	return "", false
}

// ParseDate parses an ISO YYYY-MM-DD date.
func ParseDate(field, raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, missingField(field)
	}
	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return time.Time{}, invalidField(field, "must be a date in YYYY-MM-DD format")
	}
	return parsed, nil
}

func normalizeGender(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "male":
		return "Male"
	case "female":
		return "Female"
	case "other":
		return "Other"
	}
	return trimmed
}

func normalizeRole(raw *string) (string, error) {
	if raw == nil {
		return db.RoleUser, nil
	}
	switch strings.ToLower(strings.TrimSpace(*raw)) {
	case "", db.RoleUser:
		return db.RoleUser, nil
	case db.RoleAdmin:
		return db.RoleAdmin, nil
	}
	return "", invalidField("role", "must be one of user, admin")
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func validateEmail(email string) error {
	if email == "" {
		return missingField("email")
	}
	if err := validate.Var(email, "email"); err != nil {
		return invalidField("email", "must be a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return missingField("password")
	}
	if len(password) < MinPasswordLength {
		return invalidField("password", "must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return invalidField("password", "must be at most 72 bytes")
	}
	return nil
}

func validateMeasurement(field string, value *float64) error {
	if value != nil && *value < 0 {
		return invalidField(field, "must not be negative")
	}
	return nil
}

func validateReps(field string, reps *int) error {
	if reps != nil && *reps < 0 {
		return invalidField(field, "must be a non-negative integer")
	}
	return nil
}

func validateExerciseName(name string) error {
	if name == "" {
		return missingField("name")
	}
	return nil
}

func validateToughness(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", missingField("toughness")
	}
	level, ok := NormalizeToughness(raw)
	if !ok {
		return "", invalidField("toughness", "must be one of Easy, Medium, Hard")
	}
	return level, nil
}

func normalizedTags(tags *types.TagList) []string {
	if tags == nil {
		return nil
	}
	return types.NormalizeTags(tags.Slice()).Slice()
}
