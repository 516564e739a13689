package user

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/simp-lee/storeadmin/internal/domain"
)

// userService implements domain.UserService.
type userService struct {
	repo domain.UserRepository
}

// NewService creates a new UserService with the given repository.
func NewService(repo domain.UserRepository) domain.UserService {
	return &userService{repo: repo}
}

// CreateUser validates input, builds a User, and persists it. Email is stored
// lowercase and the mobile number keeps digits only.
func (s *userService) CreateUser(ctx context.Context, input domain.UserInput) (*domain.User, error) {
	normalizeInput(&input)
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		MobileNumber: input.MobileNumber,
		Roles:        input.Roles,
	}

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns users matching the page request.
func (s *userService) ListUsers(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, req)
}

// UpdateUser loads the existing user, applies changes, and persists them.
// An empty password keeps the stored hash.
func (s *userService) UpdateUser(ctx context.Context, id uint, input domain.UserInput) (*domain.User, error) {
	normalizeInput(&input)
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Email = input.Email
	user.MobileNumber = input.MobileNumber
	user.Roles = input.Roles

	if input.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user by ID.
func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// normalizeInput trims the name, lowercases the email, and strips everything
// but digits from the mobile number.
func normalizeInput(input *domain.UserInput) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.MobileNumber = digitsOnly(input.MobileNumber)
	input.Roles = strings.TrimSpace(input.Roles)
	if input.Roles == "" {
		input.Roles = domain.RoleUser
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validateInput checks a normalized UserInput.
func validateInput(input *domain.UserInput) error {
	nameLen := utf8.RuneCountInString(input.Name)
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen < 2 {
		return domain.NewAppError(domain.CodeValidation, "name must be at least 2 characters", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}

	if input.Email == "" {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}

	if !domain.ValidRole(input.Roles) {
		return domain.NewAppError(domain.CodeValidation, "roles must be one of USER, MODERATOR, MANAGER, ADMIN", nil)
	}

	if mobile := input.MobileNumber; mobile != "" && (len(mobile) < 7 || len(mobile) > 15) {
		return domain.NewAppError(domain.CodeValidation, "mobile number must have 7 to 15 digits", nil)
	}

	return nil
}
