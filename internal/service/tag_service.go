package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// TagService 封装标签相关的只读操作
type TagService struct {
	db *gorm.DB
}

// TagUsage 描述标签被多少个动作使用
type TagUsage struct {
	ID            uint
	Name          string
	ExerciseCount int64
}

// NewTagService 创建 TagService 实例
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns every tag with its exercise count, ordered by name.
func (s *TagService) List(ctx context.Context) ([]TagUsage, error) {
	var rows []TagUsage
	if err := s.db.WithContext(ctx).
		Table("tags").
		Select("tags.id, tags.name, COUNT(exercise_tags.exercise_id) AS exercise_count").
		Joins("LEFT JOIN exercise_tags ON exercise_tags.tag_id = tags.id").
		Group("tags.id, tags.name").
		Order("tags.name asc").
		Order("tags.id asc").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	if rows == nil {
		rows = []TagUsage{}
	}
	return rows, nil
}
