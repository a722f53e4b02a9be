package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/flexfit/internal/db"
	"gorm.io/gorm"
)

// Sort orders accepted by ProgressService.List.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// ProgressService appends and reads body measurement check-ins.
type ProgressService struct {
	db  *gorm.DB
	now func() time.Time
}

// ProgressInput is one check-in; both measurements are optional.
type ProgressInput struct {
	Height *float64
	Weight *float64
}

// NewProgressService constructs a ProgressService.
func NewProgressService(gdb *gorm.DB) *ProgressService {
	return &ProgressService{db: gdb, now: time.Now}
}

// Log appends a progress row for the user dated now.
func (s *ProgressService) Log(ctx context.Context, userID uint, input ProgressInput) (*db.ProgressLog, error) {
	if err := validateMeasurement("height", input.Height); err != nil {
		return nil, err
	}
	if err := validateMeasurement("weight", input.Weight); err != nil {
		return nil, err
	}

	entry := db.ProgressLog{
		UserID: userID,
		Date:   s.now().UTC(),
		Height: input.Height,
		Weight: input.Weight,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadUser(tx, userID); err != nil {
			return err
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create progress log: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns the user's check-ins sorted by date; order is asc (default) or desc.
func (s *ProgressService) List(ctx context.Context, userID uint, order string) ([]db.ProgressLog, error) {
	direction, err := normalizeOrder(order)
	if err != nil {
		return nil, err
	}

	gdb := s.db.WithContext(ctx)
	if _, err := loadUser(gdb, userID); err != nil {
		return nil, err
	}

	logs := []db.ProgressLog{}
	if err := gdb.Where("user_id = ?", userID).
		Order("date " + direction).
		Order("id " + direction).
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list progress logs: %w", err)
	}
	return logs, nil
}

func normalizeOrder(order string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", OrderAsc:
		return "ASC", nil
	case OrderDesc:
		return "DESC", nil
	}
	return "", invalidField("order", "must be asc or desc")
}
