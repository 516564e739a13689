package auth

// LoginRequest represents the input for POST /login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest represents the input for POST /register.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required,min=2,max=100"`
	Email        string `json:"email" binding:"required,email"`
	MobileNumber string `json:"mobileNumber" binding:"omitempty,min=7,max=20"`
	Password     string `json:"password" binding:"required,min=8,max=72"`
}

// TokenResponse is the payload returned on successful login.
type TokenResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

// ProfileResponse is the payload returned by GET /profile.
type ProfileResponse struct {
	UserID       uint   `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobileNumber"`
	Roles        string `json:"roles"`
}
