package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/flexfit/internal/db"
)

func TestSignupHashesPassword(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())

	user, err := svc.Signup(context.Background(), validSignup("karim", "Karim@Example.com "))
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}
	if user.Email != "karim@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != db.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if user.Gender != "Male" {
		t.Fatalf("expected gender normalized, got %q", user.Gender)
	}

	var stored db.User
	if err := gdb.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret123" || strings.Contains(stored.PasswordHash, "secret123") {
		t.Fatalf("password stored in plaintext: %q", stored.PasswordHash)
	}
	if got := time.Time(stored.DateOfBirth).Format("2006-01-02"); got != "1995-04-12" {
		t.Fatalf("unexpected date of birth %s", got)
	}
}

func TestSignupValidation(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())

	tests := []struct {
		name  string
		edit  func(in *SignupInput)
		field string
	}{
		{name: "missing username", edit: func(in *SignupInput) { in.Username = "" }, field: "username"},
		{name: "missing full name", edit: func(in *SignupInput) { in.FullName = " " }, field: "full_name"},
		{name: "bad email", edit: func(in *SignupInput) { in.Email = "not-an-email" }, field: "email"},
		{name: "short password", edit: func(in *SignupInput) { in.Password = "abc" }, field: "password"},
		{name: "password over bcrypt limit", edit: func(in *SignupInput) { in.Password = strings.Repeat("a", 80) }, field: "password"},
		{name: "email without domain", edit: func(in *SignupInput) { in.Email = "sam@" }, field: "email"},
		{name: "bad date", edit: func(in *SignupInput) { in.DateOfBirth = "12/04/1995" }, field: "date_of_birth"},
		{name: "missing height", edit: func(in *SignupInput) { in.Height = nil }, field: "height"},
		{name: "negative weight", edit: func(in *SignupInput) { in.Weight = ptr(-3.0) }, field: "weight"},
		{name: "missing gender", edit: func(in *SignupInput) { in.Gender = "" }, field: "gender"},
		{name: "unknown role", edit: func(in *SignupInput) { in.Role = ptr("root") }, field: "role"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validSignup("sam", "sam@example.com")
			tt.edit(&input)
			_, err := svc.Signup(context.Background(), input)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("expected field %s, got %s", tt.field, verr.Field)
			}
		})
	}
}

func TestSignupConflicts(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup("nora", "nora@example.com")); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := svc.Signup(ctx, validSignup("other", "NORA@example.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	if _, err := svc.Signup(ctx, validSignup("nora", "fresh@example.com")); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	var count int64
	gdb.Model(&db.User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one user, got %d", count)
	}
}

func TestSignupAcceptsSeventyTwoBytePassword(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())
	ctx := context.Background()

	input := validSignup("long", "long@example.com")
	input.Password = strings.Repeat("b", MaxPasswordBytes)
	if _, err := svc.Signup(ctx, input); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "long@example.com", input.Password); err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
}

func TestClassifyUserConflict(t *testing.T) {
	gdb := setupTestDB(t)
	seedUser(t, gdb, "nora", "nora@example.com")

	if err := classifyUserConflict(gdb, "fresh@example.com", "nora"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if err := classifyUserConflict(gdb, "nora@example.com", "fresh"); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	err := classifyUserConflict(gdb, "fresh@example.com", "fresh")
	if !errors.Is(err, ErrAccountExists) || KindOf(err) != KindConflict {
		t.Fatalf("expected neutral conflict, got %v", err)
	}
}

func TestSignupAdminRole(t *testing.T) {
	gdb := setupTestDB(t)
	input := validSignup("boss", "boss@example.com")
	input.Role = ptr("Admin")

	user, err := NewUserService(gdb, testHasher()).Signup(context.Background(), input)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.Role != db.RoleAdmin {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
}

func TestAuthenticate(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())
	ctx := context.Background()
	seedUser(t, gdb, "lina", "lina@example.com")

	user, err := svc.Authenticate(ctx, " LINA@example.com", "secret123")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if user.Username != "lina" {
		t.Fatalf("unexpected user %q", user.Username)
	}

	if _, err := svc.Authenticate(ctx, "lina@example.com", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "", "secret123"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for empty email, got %v", err)
	}
}

func TestUpdateMeasurementsLeavesOtherFields(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())
	ctx := context.Background()
	user := seedUser(t, gdb, "omar", "omar@example.com")

	updated, err := svc.UpdateMeasurements(ctx, user.ID, MeasurementPatch{Weight: ptr(68.5)})
	if err != nil {
		t.Fatalf("UpdateMeasurements returned error: %v", err)
	}
	if updated.Weight != 68.5 {
		t.Fatalf("expected weight 68.5, got %v", updated.Weight)
	}
	if updated.Height != 175 || updated.Username != "omar" || updated.PasswordHash != user.PasswordHash {
		t.Fatalf("unexpected side effects: %+v", updated)
	}

	again, err := svc.UpdateMeasurements(ctx, user.ID, MeasurementPatch{Weight: ptr(68.5)})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if again.Weight != updated.Weight || again.Height != updated.Height {
		t.Fatalf("repeated update diverged: %+v vs %+v", again, updated)
	}

	zeroed, err := svc.UpdateMeasurements(ctx, user.ID, MeasurementPatch{Height: ptr(0.0)})
	if err != nil {
		t.Fatalf("zero update: %v", err)
	}
	if zeroed.Height != 0 {
		t.Fatalf("expected height written as zero, got %v", zeroed.Height)
	}

	if _, err := svc.UpdateMeasurements(ctx, user.ID, MeasurementPatch{}); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error for empty patch, got %v", err)
	}
	if _, err := svc.UpdateMeasurements(ctx, 4242, MeasurementPatch{Height: ptr(1.0)}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	gdb := setupTestDB(t)
	ctx := context.Background()
	users := NewUserService(gdb, testHasher())
	saved := NewSavedExerciseService(gdb)

	alice := seedUser(t, gdb, "alice", "alice@example.com")
	bob := seedUser(t, gdb, "bob", "bob@example.com")
	squat := seedExercise(t, gdb, "Squat", "with equipment")

	for _, id := range []uint{alice.ID, bob.ID} {
		if _, err := saved.Toggle(ctx, id, squat.ID); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if _, err := NewProgressService(gdb).Log(ctx, alice.ID, ProgressInput{Weight: ptr(60.0)}); err != nil {
		t.Fatalf("progress: %v", err)
	}
	if _, err := NewWorkoutService(gdb).Log(ctx, alice.ID, squat.ID, nil); err != nil {
		t.Fatalf("workout: %v", err)
	}

	if err := users.Delete(ctx, alice.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := users.Get(ctx, alice.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}

	for _, model := range []interface{}{&db.SavedExercise{}, &db.ProgressLog{}, &db.WorkoutLog{}} {
		var count int64
		gdb.Model(model).Where("user_id = ?", alice.ID).Count(&count)
		if count != 0 {
			t.Fatalf("expected %T rows removed, found %d", model, count)
		}
	}

	ids, err := saved.ListExerciseIDs(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListExerciseIDs: %v", err)
	}
	if len(ids) != 1 || ids[0] != squat.ID {
		t.Fatalf("other user's bookmarks changed: %v", ids)
	}

	if err := users.Delete(ctx, alice.ID); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestEnsureAdmin(t *testing.T) {
	gdb := setupTestDB(t)
	svc := NewUserService(gdb, testHasher())
	ctx := context.Background()

	created, err := svc.EnsureAdmin(ctx, "admin", "admin@example.com", "change-me")
	if err != nil {
		t.Fatalf("EnsureAdmin returned error: %v", err)
	}
	if !created {
		t.Fatal("expected admin to be created")
	}

	created, err = svc.EnsureAdmin(ctx, "admin", "admin@example.com", "change-me")
	if err != nil {
		t.Fatalf("second EnsureAdmin returned error: %v", err)
	}
	if created {
		t.Fatal("expected second call to be a no-op")
	}

	admin, err := svc.Authenticate(ctx, "admin@example.com", "change-me")
	if err != nil {
		t.Fatalf("admin cannot log in: %v", err)
	}
	if admin.Role != db.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}

	if created, err := svc.EnsureAdmin(ctx, "", "", ""); err != nil || created {
		t.Fatalf("expected blank config to be ignored, got %v %v", created, err)
	}

	created, err = svc.EnsureAdmin(ctx, "root", "root@example.com", strings.Repeat("x", 80))
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "password" || created {
		t.Fatalf("expected password validation error, got %v (created=%v)", err, created)
	}
}
