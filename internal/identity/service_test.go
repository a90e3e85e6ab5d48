package identity_test

import (
	"errors"
	"testing"

	"github.com/adintl/catalog-api/internal/config"
	"github.com/adintl/catalog-api/internal/identity"
	"github.com/adintl/catalog-api/internal/types"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) *identity.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := db.AutoMigrate(&identity.User{}, &identity.UserRole{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	cfg := &config.Config{
		JWTSecret:     "test-secret",
		JWTIssuer:     "catalog-api",
		JWTAudience:   "catalog-clients",
		JWTExpireDays: 1,
	}
	return identity.NewService(db, cfg)
}

func register(t *testing.T, svc *identity.Service, username, email string) *identity.User {
	t.Helper()

	user, err := svc.Register(identity.RegisterInput{
		Username: username,
		Email:    email,
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("Failed to register %s: %v", username, err)
	}
	return user
}

func TestRegisterAssignsDefaultRole(t *testing.T) {
	svc := setupService(t)

	user := register(t, svc, "alice", "alice@example.com")
	if !user.HasRole(identity.RoleUser) {
		t.Errorf("Expected default role %q, got %v", identity.RoleUser, user.RoleNames())
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := setupService(t)
	register(t, svc, "alice", "alice@example.com")

	_, err := svc.Register(identity.RegisterInput{
		Username: "alice", Email: "other@example.com", Password: "pw123456",
	})
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Message != "Username already exists." {
		t.Errorf("Unexpected error: %v", err)
	}

	_, err = svc.Register(identity.RegisterInput{
		Username: "alice2", Email: "alice@example.com", Password: "pw123456",
	})
	if !errors.As(err, &ce) || ce.Message != "Email already exists." {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := setupService(t)
	register(t, svc, "alice", "alice@example.com")

	// by username
	if _, err := svc.Authenticate("alice", "", "s3cret-pass"); err != nil {
		t.Errorf("Username login failed: %v", err)
	}
	// by email
	if _, err := svc.Authenticate("", "alice@example.com", "s3cret-pass"); err != nil {
		t.Errorf("Email login failed: %v", err)
	}

	// wrong password and unknown user yield the same message
	var ce *types.CustomError
	_, err := svc.Authenticate("alice", "", "wrong")
	if !errors.As(err, &ce) || ce.Code != 401 || ce.Message != "Invalid login attempt." {
		t.Errorf("Unexpected error: %v", err)
	}
	_, err = svc.Authenticate("nobody", "", "s3cret-pass")
	if !errors.As(err, &ce) || ce.Code != 401 || ce.Message != "Invalid login attempt." {
		t.Errorf("Unexpected error: %v", err)
	}

	// neither identifier
	_, err = svc.Authenticate("", "", "s3cret-pass")
	if !errors.As(err, &ce) || ce.Code != 400 {
		t.Errorf("Expected 400, got %v", err)
	}
}

func TestChangeRole(t *testing.T) {
	svc := setupService(t)
	register(t, svc, "alice", "alice@example.com")

	// case-insensitive input stores the canonical spelling
	if err := svc.ChangeRole("alice", "administrator"); err != nil {
		t.Fatalf("Failed to change role: %v", err)
	}
	roles, err := svc.Roles("alice")
	if err != nil {
		t.Fatalf("Failed to get roles: %v", err)
	}
	if len(roles) != 1 || roles[0] != identity.RoleAdministrator {
		t.Errorf("Expected [%s], got %v", identity.RoleAdministrator, roles)
	}

	// unknown role rejected
	err = svc.ChangeRole("alice", "Superuser")
	var ce *types.CustomError
	if !errors.As(err, &ce) || ce.Message != "Role 'Superuser' does not exist." {
		t.Errorf("Unexpected error: %v", err)
	}

	// unknown user leaves nothing behind
	err = svc.ChangeRole("nobody", identity.RoleUser)
	if !errors.As(err, &ce) || ce.Code != 404 || ce.Message != "User not found." {
		t.Errorf("Unexpected error: %v", err)
	}
	var roleCount int64
	svc.DB.Model(&identity.UserRole{}).Count(&roleCount)
	if roleCount != 1 {
		t.Errorf("Expected 1 role row, got %d", roleCount)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := setupService(t)
	user := register(t, svc, "alice", "alice@example.com")

	token, err := svc.IssueToken(user)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}
	if claims.Username != "alice" || !claims.HasRole(identity.RoleUser) {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	if _, err := svc.ValidateToken(token + "tampered"); err == nil {
		t.Error("Tampered token must not validate")
	}
}

func TestEnsureAdmin(t *testing.T) {
	svc := setupService(t)
	svc.Cfg.AdminUsername = "admin"
	svc.Cfg.AdminPassword = "admin-pass"

	if err := svc.EnsureAdmin(); err != nil {
		t.Fatalf("Failed to ensure admin: %v", err)
	}

	user, err := svc.Authenticate("admin", "", "admin-pass")
	if err != nil {
		t.Fatalf("Bootstrap admin login failed: %v", err)
	}
	if !user.HasRole(identity.RoleAdministrator) {
		t.Error("Bootstrap account must be an administrator")
	}

	// idempotent while an administrator exists
	if err := svc.EnsureAdmin(); err != nil {
		t.Fatalf("Second EnsureAdmin failed: %v", err)
	}
	var count int64
	svc.DB.Model(&identity.User{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}
}
