package dto

// RegisterRequest is the POST /api/register body.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the POST /api/login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the bearer token for a successful login.
type LoginResponse struct {
	Success  bool   `json:"success"`
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// MessageResponse is the generic success envelope.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
