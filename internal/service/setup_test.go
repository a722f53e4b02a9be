package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/flexfit/internal/auth"
	"github.com/flexfit/internal/db"
	"github.com/flexfit/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testMediaURL = "https://example.com/placeholder.png"

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	gdb, err := db.Open(dsn, db.Options{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func testHasher() auth.Hasher {
	return auth.NewHasher(bcrypt.MinCost)
}

func ptr[T any](v T) *T {
	return &v
}

func tags(names ...string) *types.TagList {
	list := types.TagList(names)
	return &list
}

func validSignup(username, email string) SignupInput {
	return SignupInput{
		Username:    username,
		FullName:    "Test User",
		Email:       email,
		Password:    "secret123",
		DateOfBirth: "1995-04-12",
		Height:      ptr(175.0),
		Weight:      ptr(70.0),
		Gender:      "male",
	}
}

func seedUser(t *testing.T, gdb *gorm.DB, username, email string) *db.User {
	t.Helper()
	user, err := NewUserService(gdb, testHasher()).Signup(context.Background(), validSignup(username, email))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedExercise(t *testing.T, gdb *gorm.DB, name string, tagNames ...string) *db.Exercise {
	t.Helper()
	exercise, err := NewExerciseService(gdb, testMediaURL).Create(context.Background(), ExerciseInput{
		Name:        name,
		Description: name + " description",
		Toughness:   "Medium",
		Tags:        tags(tagNames...),
	})
	if err != nil {
		t.Fatalf("seed exercise: %v", err)
	}
	return exercise
}
