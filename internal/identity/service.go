package identity

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/adintl/catalog-api/internal/config"
	"github.com/adintl/catalog-api/internal/types"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Service is the identity/access gateway: it authenticates credentials,
// issues and validates bearer tokens, and manages role assignment.
type Service struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewService creates an identity service backed by the given database
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{DB: db, Cfg: cfg}
}

// RegisterInput carries a new account registration
type RegisterInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
}

// Register creates an account with the default User role
func (s *Service) Register(input RegisterInput) (*User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, types.Validation("Username, email and password are required.", "account.validation")
	}

	var existing User
	if err := s.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		return nil, types.Validation("Username already exists.", "account.validation")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.DB.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		return nil, types.Validation("Email already exists.", "account.validation")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Roles:        []UserRole{{Role: RoleUser}},
	}

	if err := s.DB.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate resolves an account by username or email and checks the password
func (s *Service) Authenticate(username, email, password string) (*User, error) {
	if username == "" && email == "" {
		return nil, types.Validation("Either email or username must be provided.", "account.validation")
	}

	var user User
	query := s.DB.Preload("Roles")
	if email != "" {
		query = query.Where("email = ?", email)
	} else {
		query = query.Where("username = ?", username)
	}

	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.CustomError{Code: 401, Message: "Invalid login attempt.", Type: "account.credentials"}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &types.CustomError{Code: 401, Message: "Invalid login attempt.", Type: "account.credentials"}
	}

	return &user, nil
}

// ChangeRole replaces every role of the named user with the given one
func (s *Service) ChangeRole(username, role string) error {
	role, ok := canonicalRole(role)
	if !ok {
		return types.Validation(fmt.Sprintf("Role '%s' does not exist.", role), "account.validation")
	}

	var user User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.NotFound("User not found.", "account.notfound")
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&UserRole{}).Error; err != nil {
			return err
		}
		return tx.Create(&UserRole{UserID: user.ID, Role: role}).Error
	})
}

// Roles returns the role names of the named user
func (s *Service) Roles(username string) ([]string, error) {
	var user User
	if err := s.DB.Preload("Roles").Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("User not found.", "account.notfound")
		}
		return nil, err
	}
	return user.RoleNames(), nil
}

// EnsureAdmin creates the bootstrap administrator account when no
// administrator exists yet. Registration itself is admin-only, so a fresh
// deployment needs this seed to get a first token.
func (s *Service) EnsureAdmin() error {
	if s.Cfg.AdminUsername == "" || s.Cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := s.DB.Model(&UserRole{}).Where("role = ?", RoleAdministrator).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := s.Cfg.AdminEmail
	if email == "" {
		email = s.Cfg.AdminUsername + "@localhost"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.Cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Username:     s.Cfg.AdminUsername,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        []UserRole{{Role: RoleAdministrator}},
	}
	if err := s.DB.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Created bootstrap administrator account: %s", admin.Username)
	return nil
}

// canonicalRole maps a role name to its canonical spelling
func canonicalRole(role string) (string, bool) {
	for _, r := range KnownRoles {
		if strings.EqualFold(r, role) {
			return r, true
		}
	}
	return role, false
}
