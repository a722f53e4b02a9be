package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserService handles accounts, credentials and profile fields.
type UserService struct {
	db     *gorm.DB
	hasher auth.Hasher
}

// SignupInput holds the fields accepted at signup. Role nil means "user".
type SignupInput struct {
	Username    string
	FullName    string
	Email       string
	Password    string
	DateOfBirth string
	Height      *float64
	Weight      *float64
	Gender      string
	Role        *string
}

// MeasurementPatch carries the profile fields that may be updated.
type MeasurementPatch struct {
	Height *float64
	Weight *float64
}

// NewUserService constructs a UserService.
func NewUserService(gdb *gorm.DB, hasher auth.Hasher) *UserService {
	return &UserService{db: gdb, hasher: hasher}
}

// Signup validates input, hashes the password and creates the account.
func (s *UserService) Signup(ctx context.Context, input SignupInput) (*db.User, error) {
	user, password, err := buildUser(input)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hashed

	gdb := s.db.WithContext(ctx)
	err = gdb.Transaction(func(tx *gorm.DB) error {
		if err := ensureUserUnique(tx, user.Email, user.Username); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		return nil
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Lost a race with a concurrent signup; report the column that collided.
		return nil, classifyUserConflict(gdb, user.Email, user.Username)
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate verifies credentials. Unknown email and wrong password are
// reported identically.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*db.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, missingField("email")
	}
	if password == "" {
		return nil, missingField("password")
	}

	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := s.hasher.Check(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// Get loads a user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*db.User, error) {
	return loadUser(s.db.WithContext(ctx), id)
}

// GetByEmail loads a user by login email.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*db.User, error) {
	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &user, nil
}

// UpdateMeasurements changes height and/or weight; other fields stay as-is.
func (s *UserService) UpdateMeasurements(ctx context.Context, id uint, patch MeasurementPatch) (*db.User, error) {
	if patch.Height == nil && patch.Weight == nil {
		return nil, invalidField("", "height or weight is required")
	}
	if err := validateMeasurement("height", patch.Height); err != nil {
		return nil, err
	}
	if err := validateMeasurement("weight", patch.Weight); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{}, 2)
	if patch.Height != nil {
		updates["height"] = *patch.Height
	}
	if patch.Weight != nil {
		updates["weight"] = *patch.Weight
	}

	var result *db.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := loadUser(tx, id)
		if err != nil {
			return err
		}
		if err := tx.Model(user).Updates(updates).Error; err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		result, err = loadUser(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the user and everything it owns.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := loadUser(tx, id); err != nil {
			return err
		}
		for _, owned := range []interface{}{&db.ProgressLog{}, &db.SavedExercise{}, &db.WorkoutLog{}} {
			if err := tx.Where("user_id = ?", id).Delete(owned).Error; err != nil {
				return fmt.Errorf("delete owned rows: %w", err)
			}
		}
		if err := tx.Delete(&db.User{}, id).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// EnsureAdmin creates an admin account when no user holds email yet.
// Blank arguments make it a no-op.
func (s *UserService) EnsureAdmin(ctx context.Context, username, email, password string) (bool, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return false, nil
	}
	if err := validatePassword(password); err != nil {
		return false, err
	}

	if _, err := s.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, ErrUserNotFound) {
		return false, err
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return false, err
	}

	admin := db.User{
		Username:     username,
		FullName:     username,
		Email:        email,
		PasswordHash: hashed,
		Gender:       "Other",
		Role:         db.RoleAdmin,
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserUnique(tx, admin.Email, admin.Username); err != nil {
			return err
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func buildUser(input SignupInput) (*db.User, string, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, "", missingField("username")
	}
	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		return nil, "", missingField("full_name")
	}
	email := normalizeEmail(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, "", err
	}
	dob, err := ParseDate("date_of_birth", input.DateOfBirth)
	if err != nil {
		return nil, "", err
	}
	if input.Height == nil {
		return nil, "", missingField("height")
	}
	if err := validateMeasurement("height", input.Height); err != nil {
		return nil, "", err
	}
	if input.Weight == nil {
		return nil, "", missingField("weight")
	}
	if err := validateMeasurement("weight", input.Weight); err != nil {
		return nil, "", err
	}
	gender := normalizeGender(input.Gender)
	if gender == "" {
		return nil, "", missingField("gender")
	}
	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, "", err
	}

	return &db.User{
		Username:    username,
		FullName:    fullName,
		Email:       email,
		DateOfBirth: datatypes.Date(dob),
		Height:      *input.Height,
		Weight:      *input.Weight,
		Gender:      gender,
		Role:        role,
	}, input.Password, nil
}

func ensureUserUnique(tx *gorm.DB, email, username string) error {
	var count int64
	if err := tx.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return ErrEmailTaken
	}
	if err := tx.Model(&db.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return ErrUsernameTaken
	}
	return nil
}

// classifyUserConflict re-runs the uniqueness checks after a unique index
// violation. A row that is gone again by then yields ErrAccountExists.
func classifyUserConflict(gdb *gorm.DB, email, username string) error {
	if err := ensureUserUnique(gdb, email, username); err != nil {
		return err
	}
	return ErrAccountExists
}

func loadUser(tx *gorm.DB, id uint) (*db.User, error) {
	var user db.User
	if err := tx.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}
