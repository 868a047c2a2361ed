package services

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"spendwise/internal/models"
	"spendwise/internal/testutil"
	"spendwise/internal/uuid"
)

// newUserEnv returns a fresh database, a user service over it and a
// registered account with password "password123".
func newUserEnv(t *testing.T, email string) (*gorm.DB, UserServicer, *models.User) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })
	svc := NewUserService(db)
	user, err := svc.CreateUser(email, "password123", "Budget", "Owner")
	testutil.AssertNoError(t, err)
	return db, svc, user
}

func TestUserService_CreateUser(t *testing.T) {
	_, svc, owner := newUserEnv(t, "Owner@Example.com ")

	if owner.ID == "" || !uuid.IsValid(owner.ID) {
		t.Errorf("want a generated uuid, got %q", owner.ID)
	}
	if owner.Email != "owner@example.com" {
		t.Errorf("want normalized email, got %q", owner.Email)
	}
	if !owner.IsActive {
		t.Error("want new users active")
	}
	if owner.Password == "password123" || bcrypt.CompareHashAndPassword([]byte(owner.Password), []byte("password123")) != nil {
		t.Error("want password stored as a bcrypt hash")
	}

	rejects := []struct {
		name, email, password, code string
	}{
		{"missing email", "", "password123", "INVALID_INPUT"},
		{"missing password", "new@example.com", "", "INVALID_INPUT"},
		{"duplicate email in other case", "OWNER@example.com", "password456", "DUPLICATE_EMAIL"},
	}
	for _, tc := range rejects {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(tc.email, tc.password, "", "")
			testutil.AssertAppError(t, err, tc.code)
		})
	}
}

func TestUserService_Lookup(t *testing.T) {
	db, svc, owner := newUserEnv(t, "lookup@example.com")

	byEmail, err := svc.GetUserByEmail("LOOKUP@example.com")
	testutil.AssertNoError(t, err)
	if byEmail.ID != owner.ID {
		t.Errorf("GetUserByEmail: want %s, got %s", owner.ID, byEmail.ID)
	}

	byID, err := svc.GetUserByID(owner.ID)
	testutil.AssertNoError(t, err)
	if byID.Email != owner.Email {
		t.Errorf("GetUserByID: want %s, got %s", owner.Email, byID.Email)
	}

	_, err = svc.GetUserByID(uuid.New())
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")

	_, err = svc.GetUserByEmail("nobody@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")

	testutil.AssertNoError(t, db.Model(owner).Update("is_active", false).Error)
	_, err = svc.GetUserByEmail("lookup@example.com")
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}

func TestUserService_VerifyPassword(t *testing.T) {
	_, svc, owner := newUserEnv(t, "verify@example.com")

	if !svc.VerifyPassword(owner, "password123") {
		t.Error("want correct password accepted")
	}
	if svc.VerifyPassword(owner, "password124") {
		t.Error("want wrong password rejected")
	}
}

func TestUserService_AttemptLogin(t *testing.T) {
	t.Run("failures count up and lock the account", func(t *testing.T) {
		db, svc, owner := newUserEnv(t, "lock@example.com")

		for i := 1; i <= maxFailedLogins; i++ {
			_, err := svc.AttemptLogin("lock@example.com", "nope")
			testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
		}

		var stored models.User
		testutil.AssertNoError(t, db.First(&stored, "id = ?", owner.ID).Error)
		if stored.FailedLoginAttempts != maxFailedLogins {
			t.Errorf("want %d failures, got %d", maxFailedLogins, stored.FailedLoginAttempts)
		}
		if stored.LockedUntil == nil || !stored.LockedUntil.After(time.Now()) {
			t.Fatalf("want lock in the future, got %v", stored.LockedUntil)
		}

		_, err := svc.AttemptLogin("lock@example.com", "password123")
		testutil.AssertAppError(t, err, "ACCOUNT_LOCKED")
	})

	t.Run("expired lock lets the right password in and resets state", func(t *testing.T) {
		db, svc, owner := newUserEnv(t, "expired@example.com")
		past := time.Now().Add(-time.Minute)
		testutil.AssertNoError(t, db.Model(owner).Updates(map[string]interface{}{
			"failed_login_attempts": maxFailedLogins,
			"locked_until":          past,
		}).Error)

		user, err := svc.AttemptLogin("expired@example.com", "password123")
		testutil.AssertNoError(t, err)
		if user.FailedLoginAttempts != 0 || user.LockedUntil != nil {
			t.Errorf("want lockout state cleared, got %d / %v", user.FailedLoginAttempts, user.LockedUntil)
		}
		if user.LastLoginAt == nil {
			t.Error("want last login recorded")
		}
	})

	t.Run("unknown email looks like a wrong password", func(t *testing.T) {
		_, svc, _ := newUserEnv(t, "known@example.com")

		_, err := svc.AttemptLogin("unknown@example.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})
}

func TestUserService_RefreshTokenHash(t *testing.T) {
	_, svc, owner := newUserEnv(t, "refresh@example.com")

	first := "1111111111111111111111111111111111111111111111111111111111111111"
	second := "2222222222222222222222222222222222222222222222222222222222222222"

	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(owner.ID, first))
	testutil.AssertNoError(t, svc.StoreRefreshTokenHash(owner.ID, second))

	got, err := svc.GetRefreshTokenHash(owner.ID)
	testutil.AssertNoError(t, err)
	if got != second {
		t.Errorf("want the latest hash kept, got %s", got)
	}

	testutil.AssertAppError(t, svc.StoreRefreshTokenHash(uuid.New(), first), "USER_NOT_FOUND")

	_, err = svc.GetRefreshTokenHash(uuid.New())
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
