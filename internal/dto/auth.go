package dto

// SignupRequest carries the fields of a signup form.
type SignupRequest struct {
	Username        string `json:"username" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	UserID   string `json:"userID"`
	Username string `json:"username"`
}

// UpdateUsernameRequest renames the authenticated user.
type UpdateUsernameRequest struct {
	Username string `json:"username" binding:"required"`
}

// UpdatePasswordRequest replaces the authenticated user's password.
type UpdatePasswordRequest struct {
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}
