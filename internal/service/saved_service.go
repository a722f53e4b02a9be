package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/flexfit/internal/db"
	"gorm.io/gorm"
)

// Toggle outcomes.
const (
	ToggleSaved   = "saved"
	ToggleRemoved = "removed"
)

// SavedExerciseService maintains user bookmarks. The table is the only
// source of truth; clients refetch instead of caching.
type SavedExerciseService struct {
	db *gorm.DB
}

// NewSavedExerciseService constructs a SavedExerciseService.
func NewSavedExerciseService(gdb *gorm.DB) *SavedExerciseService {
	return &SavedExerciseService{db: gdb}
}

// Toggle removes the bookmark when it exists and creates it otherwise.
func (s *SavedExerciseService) Toggle(ctx context.Context, userID, exerciseID uint) (string, error) {
	var status string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadUser(tx, userID); err != nil {
			return err
		}
		if _, err := loadExercise(tx, exerciseID); err != nil {
			return err
		}

		var existing db.SavedExercise
		err := tx.Where("user_id = ? AND exercise_id = ?", userID, exerciseID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return fmt.Errorf("remove bookmark: %w", err)
			}
			status = ToggleRemoved
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := insertBookmark(tx, userID, exerciseID); err != nil {
				return err
			}
			status = ToggleSaved
			return nil
		default:
			return fmt.Errorf("find bookmark: %w", err)
		}
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

// IsSaved reports whether the user bookmarked the exercise.
func (s *SavedExerciseService) IsSaved(ctx context.Context, userID, exerciseID uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.SavedExercise{}).
		Where("user_id = ? AND exercise_id = ?", userID, exerciseID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return count > 0, nil
}

// ListExerciseIDs returns the bookmarked exercise ids of a user in ascending order.
func (s *SavedExerciseService) ListExerciseIDs(ctx context.Context, userID uint) ([]uint, error) {
	gdb := s.db.WithContext(ctx)
	if _, err := loadUser(gdb, userID); err != nil {
		return nil, err
	}

	ids := []uint{}
	if err := gdb.Model(&db.SavedExercise{}).
		Where("user_id = ?", userID).
		Order("exercise_id ASC").
		Pluck("exercise_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return ids, nil
}

// insertBookmark creates the pair row. Losing the unique index to a concurrent
// toggle is reported as a conflict.
func insertBookmark(tx *gorm.DB, userID, exerciseID uint) error {
	link := db.SavedExercise{UserID: userID, ExerciseID: exerciseID}
	if err := tx.Omit("Exercise").Create(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrBookmarkChanged
		}
		return fmt.Errorf("save bookmark: %w", err)
	}
	return nil
}
