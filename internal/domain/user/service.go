// internal/domain/user/service.go
package user

import (
	"errors"
	"strings"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/pkg/apperr"
	"github.com/your-org/marketplace-backend/internal/pkg/auth"
	"gorm.io/gorm"
)

// Service handles account registration and login
type Service struct {
	db              *gorm.DB
	config          *config.Config
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
}

// NewService creates a new user service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:              db,
		config:          cfg,
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
	}
}

// RegisterRequest represents user registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest represents user login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the account it belongs to
type LoginResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// Register creates a new account. Self-registration is open to buyers
// and sellers; admin accounts are provisioned out of band.
func (s *Service) Register(req *RegisterRequest) (*Profile, error) {
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role != auth.RoleBuyer && role != auth.RoleSeller {
		return nil, apperr.Invalid("role must be buyer or seller")
	}

	if err := s.passwordManager.ValidatePassword(req.Password); err != nil {
		return nil, apperr.Invalid("%s", err.Error())
	}

	hashed, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Internal("failed to hash password", err)
	}

	u := User{
		Username: strings.TrimSpace(req.Username),
		Password: hashed,
		Role:     role,
	}
	if err := s.db.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return nil, apperr.Conflict("username already taken")
		}
		return nil, apperr.Internal("failed to create user", err)
	}

	return u.ToProfile(), nil
}

// Login verifies credentials and issues an access token
func (s *Service) Login(req *LoginRequest) (*LoginResponse, error) {
	var u User
	result := s.db.Where("username = ?", strings.TrimSpace(req.Username)).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthenticated("invalid username or password")
		}
		return nil, apperr.Internal("failed to load user", result.Error)
	}

	if err := s.passwordManager.VerifyPassword(req.Password, u.Password); err != nil {
		return nil, apperr.Unauthenticated("invalid username or password")
	}

	token, err := s.jwtManager.GenerateAccessToken(auth.Actor{UserID: u.ID, Role: u.Role})
	if err != nil {
		return nil, apperr.Internal("failed to issue token", err)
	}

	return &LoginResponse{Token: token, User: u.ToProfile()}, nil
}

// GetProfile retrieves one account's public projection
func (s *Service) GetProfile(userID uint) (*Profile, error) {
	var u User
	result := s.db.Where("id = ?", userID).First(&u)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("failed to load user", result.Error)
	}
	return u.ToProfile(), nil
}

// List retrieves every account's public projection
func (s *Service) List() ([]Profile, error) {
	var users []User
	if err := s.db.Order("id ASC").Find(&users).Error; err != nil {
		return nil, apperr.Internal("failed to list users", err)
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *users[i].ToProfile())
	}
	return profiles, nil
}

// isUniqueViolation recognizes unique-constraint failures from drivers
// that do not translate them to gorm.ErrDuplicatedKey
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
