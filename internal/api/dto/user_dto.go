package dto

// UserRegisterRequest payload for new users.
type UserRegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLoginRequest payload for login.
type UserLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is a user without its password.
type UserResponse struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}
