package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "londonhealth/internal/errors"
	"londonhealth/internal/model"
	"londonhealth/internal/repository"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8

	// DefaultPerPage applies when a caller asks for a non-positive page size.
	DefaultPerPage = 10
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// UserService exposes credential store domain operations.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*model.User, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context, page, perPage int) ([]model.User, int64, error)
	UpdateUser(ctx context.Context, id uint, firstName, lastName, role string) (bool, error)
	UpdatePassword(ctx context.Context, id uint, password string) (bool, error)
	DeleteUser(ctx context.Context, id uint) (bool, error)
}

type userService struct {
	repo repository.UserRepository
}

// NewUserService builds a UserService on a repository.
func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// validateUserInput is the single validation routine for user fields, shared
// by Register and UpdateUser to keep the rules from drifting.
func validateUserInput(firstName, lastName, email, role string) error {
	if strings.TrimSpace(firstName) == "" {
		return apperrors.InvalidInput("first name is required")
	}
	if strings.TrimSpace(lastName) == "" {
		return apperrors.InvalidInput("last name is required")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return apperrors.InvalidInput("email is malformed")
	}
	if !model.ValidRole(role) {
		return apperrors.InvalidInput("role must be admin or doctor")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.InvalidInput(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	return nil
}

// Register creates a new user with a hashed password. Email matching is
// case-sensitive exact, matching the credential store's unique constraint.
func (s *userService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, apperrors.InvalidInput("email is required")
	}
	if err := validateUserInput(input.FirstName, input.LastName, input.Email, input.Role); err != nil {
		return nil, err
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}

	// Pre-check for a friendlier error; the unique index is the source of
	// truth and the ErrDuplicatedKey branch below covers the race.
	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateEmail
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Role:         input.Role,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Authenticate verifies credentials. The distinct NotFound and
// InvalidCredentials results are for the caller; user-facing responses
// collapse both into one message.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ListUsers returns one page ordered by id ascending plus the total count.
func (s *userService) ListUsers(ctx context.Context, page, perPage int) ([]model.User, int64, error) {
	offset, limit := PageWindow(page, perPage)
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	users, err := s.repo.List(ctx, int(offset), int(limit))
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	return users, total, nil
}

// UpdateUser changes name and role. Returns false when no user matched.
func (s *userService) UpdateUser(ctx context.Context, id uint, firstName, lastName, role string) (bool, error) {
	if err := validateUserInput(firstName, lastName, "", role); err != nil {
		return false, err
	}
	return s.repo.UpdateProfile(ctx, id, firstName, lastName, role)
}

// UpdatePassword re-hashes and overwrites. The old password is not verified,
// matching reference behavior.
func (s *userService) UpdatePassword(ctx context.Context, id uint, password string) (bool, error) {
	if err := validatePassword(password); err != nil {
		return false, err
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hashedPassword))
}

func (s *userService) DeleteUser(ctx context.Context, id uint) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// PageWindow derives the (skip, limit) pair from 1-based (page, perPage).
func PageWindow(page, perPage int) (skip, limit int64) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return int64(page-1) * int64(perPage), int64(perPage)
}
