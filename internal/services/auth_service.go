package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Heshmert/P2-31499269/internal/config"
	"github.com/Heshmert/P2-31499269/internal/logger"
	"github.com/Heshmert/P2-31499269/internal/models"
	"github.com/Heshmert/P2-31499269/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// GoogleProfile is the subset of the OAuth userinfo payload the site
// cares about.
type GoogleProfile struct {
	Sub         string
	Email       string
	DisplayName string
}

type AuthService interface {
	// LoginLocal checks a username/password pair. Google-only accounts
	// have no password hash and always fail here.
	LoginLocal(username, password string) (*models.User, error)

	// LoginGoogle finds the user linked to the Google subject id,
	// creating a regular account on first sign-in.
	LoginGoogle(profile GoogleProfile) (*models.User, error)

	Register(username, password string) (*models.User, error)

	// GetByID rehydrates the session user on each request.
	GetByID(id uint) (*models.User, error)

	// SeedAdmin ensures the bootstrap admin account exists. Safe to call
	// on every startup.
	SeedAdmin(cfg config.AdminConfig) error
}

type AuthServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &AuthServiceImpl{userRepo: userRepo}
}

func (s *AuthServiceImpl) LoginLocal(username, password string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthServiceImpl) LoginGoogle(profile GoogleProfile) (*models.User, error) {
	user, err := s.userRepo.FindByGoogleID(profile.Sub)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, err
	}

	googleID := profile.Sub
	user = &models.User{
		Username: googleUsername(profile),
		GoogleID: &googleID,
		Role:     models.UserRoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	logger.Info("created user from google sign-in", "username", user.Username)
	return user, nil
}

func (s *AuthServiceImpl) Register(username, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	hashStr := string(hash)
	user := &models.User{
		Username:     username,
		PasswordHash: &hashStr,
		Role:         models.UserRoleUser,
	}
	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthServiceImpl) GetByID(id uint) (*models.User, error) {
	return s.userRepo.FindByID(id)
}

func (s *AuthServiceImpl) SeedAdmin(cfg config.AdminConfig) error {
	_, err := s.userRepo.FindByUsername(cfg.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	hashStr := string(hash)
	admin := &models.User{
		Username:     cfg.Username,
		PasswordHash: &hashStr,
		Role:         models.UserRoleAdmin,
	}
	if err := s.userRepo.Create(admin); err != nil {
		// Two instances racing on first boot is fine, one wins.
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil
		}
		return err
	}
	logger.Info("seeded admin user", "username", cfg.Username)
	return nil
}

// googleUsername prefers the profile display name and falls back to the
// email local part, so accounts get a readable handle.
func googleUsername(profile GoogleProfile) string {
	if profile.DisplayName != "" {
		return profile.DisplayName
	}
	if at := strings.Index(profile.Email, "@"); at > 0 {
		return profile.Email[:at]
	}
	return "google_" + profile.Sub
}
