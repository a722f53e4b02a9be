package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/types"
	"gorm.io/gorm"
)

// ExerciseService manages the exercise catalog.
type ExerciseService struct {
	db              *gorm.DB
	defaultMediaURL string
}

// ExerciseFilter narrows List. Empty fields are ignored.
type ExerciseFilter struct {
	// Search is a case-insensitive substring of the name.
	Search    string
	Tag       string
	Toughness string
}

// ExerciseInput holds the fields accepted when creating an exercise.
type ExerciseInput struct {
	Name          string
	Description   string
	Toughness     string
	MediaURL      string
	Tags          *types.TagList
	SuggestedReps *int
}

// ExercisePatch is a partial update; nil fields are left untouched.
type ExercisePatch struct {
	Name          *string
	Description   *string
	Toughness     *string
	MediaURL      *string
	Tags          *types.TagList
	SuggestedReps *int
}

// NewExerciseService constructs an ExerciseService.
func NewExerciseService(gdb *gorm.DB, defaultMediaURL string) *ExerciseService {
	return &ExerciseService{db: gdb, defaultMediaURL: strings.TrimSpace(defaultMediaURL)}
}

// List returns exercises matching filter ordered by id.
func (s *ExerciseService) List(ctx context.Context, filter ExerciseFilter) ([]db.Exercise, error) {
	query := s.db.WithContext(ctx).Model(&db.Exercise{}).Preload("Tags")

	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("exercises.name_lower LIKE ? ESCAPE '\\'", "%"+escapeLike(strings.ToLower(search))+"%")
	}
	if tag := strings.TrimSpace(filter.Tag); tag != "" {
		query = query.Where("exercises.id IN (?)", s.taggedExerciseIDs(ctx, tag))
	}
	if raw := strings.TrimSpace(filter.Toughness); raw != "" {
		level, ok := NormalizeToughness(raw)
		if !ok {
			return nil, invalidField("toughness", "must be one of Easy, Medium, Hard")
		}
		query = query.Where("exercises.toughness = ?", level)
	}

	var exercises []db.Exercise
	if err := query.Order("exercises.id ASC").Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return exercises, nil
}

// FindByTag returns exercises carrying the exact tag name.
func (s *ExerciseService) FindByTag(ctx context.Context, tag string) ([]db.Exercise, error) {
	return s.List(ctx, ExerciseFilter{Tag: tag})
}

// FindByToughness returns exercises with the given level.
func (s *ExerciseService) FindByToughness(ctx context.Context, toughness string) ([]db.Exercise, error) {
	if strings.TrimSpace(toughness) == "" {
		return nil, missingField("toughness")
	}
	return s.List(ctx, ExerciseFilter{Toughness: toughness})
}

// Get loads one exercise with its tags.
func (s *ExerciseService) Get(ctx context.Context, id uint) (*db.Exercise, error) {
	return loadExercise(s.db.WithContext(ctx), id)
}

// Create validates input and inserts a new exercise.
func (s *ExerciseService) Create(ctx context.Context, input ExerciseInput) (*db.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	if err := validateExerciseName(name); err != nil {
		return nil, err
	}
	description := strings.TrimSpace(input.Description)
	if description == "" {
		return nil, missingField("description")
	}
	toughness, err := validateToughness(input.Toughness)
	if err != nil {
		return nil, err
	}
	if input.Tags == nil {
		return nil, missingField("tags")
	}
	if err := validateReps("suggested_reps", input.SuggestedReps); err != nil {
		return nil, err
	}

	exercise := db.Exercise{
		Name:          name,
		NameLower:     strings.ToLower(name),
		Description:   description,
		Toughness:     toughness,
		MediaURL:      strings.TrimSpace(input.MediaURL),
		SuggestedReps: db.DefaultSuggestedReps,
	}
	if exercise.MediaURL == "" {
		exercise.MediaURL = s.defaultMediaURL
	}
	if input.SuggestedReps != nil {
		exercise.SuggestedReps = *input.SuggestedReps
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExerciseNameFree(tx, name, 0); err != nil {
			return err
		}
		tags, err := resolveTags(tx, normalizedTags(input.Tags))
		if err != nil {
			return err
		}
		exercise.Tags = tags
		if err := tx.Omit("Tags.*").Create(&exercise).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrExerciseExists
			}
			return fmt.Errorf("create exercise: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &exercise, nil
}

// Update applies the supplied fields of patch and returns the stored result.
func (s *ExerciseService) Update(ctx context.Context, id uint, patch ExercisePatch) (*db.Exercise, error) {
	updates := make(map[string]interface{})

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if err := validateExerciseName(name); err != nil {
			return nil, err
		}
		updates["name"] = name
		updates["name_lower"] = strings.ToLower(name)
	}
	if patch.Description != nil {
		description := strings.TrimSpace(*patch.Description)
		if description == "" {
			return nil, missingField("description")
		}
		updates["description"] = description
	}
	if patch.Toughness != nil {
		level, err := validateToughness(*patch.Toughness)
		if err != nil {
			return nil, err
		}
		updates["toughness"] = level
	}
	if patch.MediaURL != nil {
		mediaURL := strings.TrimSpace(*patch.MediaURL)
		if mediaURL == "" {
			mediaURL = s.defaultMediaURL
		}
		updates["media_url"] = mediaURL
	}
	if patch.SuggestedReps != nil {
		if err := validateReps("suggested_reps", patch.SuggestedReps); err != nil {
			return nil, err
		}
		updates["suggested_reps"] = *patch.SuggestedReps
	}

	var result *db.Exercise
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := loadExercise(tx, id)
		if err != nil {
			return err
		}

		if name, ok := updates["name"].(string); ok {
			if err := ensureExerciseNameFree(tx, name, id); err != nil {
				return err
			}
		}

		if len(updates) > 0 {
			if err := tx.Model(existing).Omit("Tags").Updates(updates).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrExerciseExists
				}
				return fmt.Errorf("update exercise: %w", err)
			}
		}

		if patch.Tags != nil {
			if err := replaceTags(tx, existing, normalizedTags(patch.Tags)); err != nil {
				return err
			}
		}

		result, err = loadExercise(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes an exercise together with its tag links, bookmarks and
// workout logs.
func (s *ExerciseService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := loadExercise(tx, id)
		if err != nil {
			return err
		}
		for _, owned := range []interface{}{&db.SavedExercise{}, &db.WorkoutLog{}} {
			if err := tx.Where("exercise_id = ?", id).Delete(owned).Error; err != nil {
				return fmt.Errorf("delete exercise references: %w", err)
			}
		}
		if err := tx.Model(existing).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("clear exercise tags: %w", err)
		}
		if err := tx.Delete(&db.Exercise{}, id).Error; err != nil {
			return fmt.Errorf("delete exercise: %w", err)
		}
		return nil
	})
}

func (s *ExerciseService) taggedExerciseIDs(ctx context.Context, tag string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table("exercise_tags").
		Select("exercise_tags.exercise_id").
		Joins("JOIN tags ON tags.id = exercise_tags.tag_id").
		Where("tags.name = ?", tag)
}

func loadExercise(tx *gorm.DB, id uint) (*db.Exercise, error) {
	var exercise db.Exercise
	if err := tx.Preload("Tags").First(&exercise, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, fmt.Errorf("get exercise: %w", err)
	}
	return &exercise, nil
}

func ensureExerciseNameFree(tx *gorm.DB, name string, exceptID uint) error {
	var count int64
	query := tx.Model(&db.Exercise{}).Where("name = ?", name)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("check exercise name: %w", err)
	}
	if count > 0 {
		return ErrExerciseExists
	}
	return nil
}

func replaceTags(tx *gorm.DB, exercise *db.Exercise, names []string) error {
	association := tx.Model(exercise).Association("Tags")
	if len(names) == 0 {
		if err := association.Clear(); err != nil {
			return fmt.Errorf("clear exercise tags: %w", err)
		}
		return nil
	}

	tags, err := resolveTags(tx, names)
	if err != nil {
		return err
	}
	if err := association.Replace(tags); err != nil {
		return fmt.Errorf("replace exercise tags: %w", err)
	}
	return nil
}

// resolveTags returns persisted tags for names, creating missing ones.
func resolveTags(tx *gorm.DB, names []string) ([]db.Tag, error) {
	tags := make([]db.Tag, 0, len(names))
	for _, name := range names {
		var tag db.Tag
		if err := tx.Where(db.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
