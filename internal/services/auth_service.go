package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/models"
	"github.com/tomasdma/donation-platform/internal/repository"
	"github.com/tomasdma/donation-platform/internal/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("email already exists")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username/email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login and user self-service.
type AuthService struct {
	userRepo       repository.UserRepository
	membershipRepo repository.MembershipRepository
	codec          *token.Codec
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, membershipRepo repository.MembershipRepository, codec *token.Codec) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		codec:          codec,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email       string
	Username    string
	Password    string
	FirstName   string
	LastName    string
	MiddleNames string
	PhoneNumber string
	Address     string
}

// Register creates a new user and returns it with a freshly issued
// token. Email and username must both be unused.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.TrimSpace(input.Email)
	username := strings.TrimSpace(input.Username)
	if email == "" || username == "" {
		return nil, "", fmt.Errorf("email and username are required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, "", ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hashedPassword),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		MiddleNames:  input.MiddleNames,
		PhoneNumber:  input.PhoneNumber,
		Address:      input.Address,
		Enabled:      true,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	signed, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, signed, nil
}

// LoginInput holds the credentials for authentication. Identifier may
// be a username or an email.
type LoginInput struct {
	Identifier string
	Password   string
}

// Login verifies credentials and returns the user with a new token.
// Disabled users fail with ErrInvalidCredentials like unknown ones.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindBySubject(input.Identifier)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !user.Enabled {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	signed, err := s.IssueToken(user)
	if err != nil {
		return nil, "", err
	}

	return user, signed, nil
}

// IssueToken signs a token for the user, embedding a snapshot of the
// current membership when one exists. The snapshot is informational;
// authorization re-reads membership on every request.
func (s *AuthService) IssueToken(user *models.User) (string, error) {
	extra := map[string]interface{}{}

	membership, err := s.membershipRepo.FindByUserID(user.ID)
	if err == nil {
		extra[constants.ClaimCompanyID] = membership.CompanyID
		extra[constants.ClaimRole] = membership.Role.Name
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to read membership: %w", err)
	}

	signed, err := s.codec.Issue(user.Username, extra)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}
	return signed, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// UpdateProfileInput holds the mutable profile fields.
type UpdateProfileInput struct {
	FirstName   string
	LastName    string
	MiddleNames string
	PhoneNumber string
	Address     string
}

// UpdateProfile mutates the user's profile fields.
func (s *AuthService) UpdateProfile(userID uint64, input UpdateProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.MiddleNames = input.MiddleNames
	user.PhoneNumber = input.PhoneNumber
	user.Address = input.Address

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the user's secret after verifying the old one.
func (s *AuthService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)); err != nil {
		return ErrInvalidCredentials
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	user.PasswordHash = string(hashed)
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

// Disable flags the account as disabled. Users are never deleted.
func (s *AuthService) Disable(userID uint64) error {
	user, err := s.GetUser(userID)
	if err != nil {
		return err
	}

	user.Enabled = false
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to disable user: %w", err)
	}
	return nil
}
