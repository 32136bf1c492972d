package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/spec-kit/ticketapp/internal/domain"
)

const (
	FieldFullName = "fullName"
	FieldEmail    = "email"
	FieldPassword = "password"
)

const PasswordMinLength = 6

const (
	MsgFullNameRequired = "Full Name is required"
	MsgEmailRequired    = "Email is required"
	MsgEmailInvalid     = "Email is invalid"
	MsgPasswordRequired = "Password is required"
	MsgPasswordTooShort = "Password must be at least 6 characters"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// ValidateLogin checks the login form.
func ValidateLogin(email, password string) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if strings.TrimSpace(email) == "" {
		errs[FieldEmail] = MsgEmailRequired
	} else if !emailPattern.MatchString(email) {
		errs[FieldEmail] = MsgEmailInvalid
	}

	if strings.TrimSpace(password) == "" {
		errs[FieldPassword] = MsgPasswordRequired
	} else if utf8.RuneCountInString(password) < PasswordMinLength {
		errs[FieldPassword] = MsgPasswordTooShort
	}

	return errs
}

// ValidateSignup checks the signup form: the login rules plus a full name.
func ValidateSignup(fullName, email, password string) domain.FieldErrors {
	errs := ValidateLogin(email, password)
	if strings.TrimSpace(fullName) == "" {
		errs[FieldFullName] = MsgFullNameRequired
	}
	return errs
}
