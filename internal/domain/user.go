package domain

import "context"

// User roles. Role is stored as a single string; the admin console renders it
// as a colored badge.
const (
	RoleUser      = "USER"
	RoleModerator = "MODERATOR"
	RoleManager   = "MANAGER"
	RoleAdmin     = "ADMIN"
)

// User represents a customer or staff account.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"userId"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	MobileNumber string `gorm:"size:20" json:"mobileNumber"`
	Roles        string `gorm:"size:20;not null;default:USER" json:"roles"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Timestamps
}

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleModerator, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, req PageRequest) (*PageResult[User], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

// UserService defines the business logic interface for users.
type UserService interface {
	CreateUser(ctx context.Context, input UserInput) (*User, error)
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, req PageRequest) (*PageResult[User], error)
	UpdateUser(ctx context.Context, id uint, input UserInput) (*User, error)
	DeleteUser(ctx context.Context, id uint) error
}

// UserInput carries the editable user surface through the service layer.
// Password is hashed when non-empty and otherwise left untouched.
type UserInput struct {
	Name         string
	Email        string
	MobileNumber string
	Roles        string
	Password     string
}
