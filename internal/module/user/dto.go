package user

// UserRequest represents the input for creating or updating a user from the
// admin console. Password is only set on create; it is optional on update.
type UserRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,min=7,max=20"`
	Roles        string `json:"roles" binding:"omitempty,oneof=USER MODERATOR MANAGER ADMIN"`
	Password     string `json:"password" binding:"omitempty,min=8,max=72"`
}
