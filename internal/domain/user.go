package domain

// User is a registered identity. Passwords are stored as entered.
type User struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the copy of a User marking who is currently authenticated.
type Session User

// DisplayName returns the name shown on the dashboard.
func (s Session) DisplayName() string {
	if s.FullName == "" {
		return "User"
	}
	return s.FullName
}
