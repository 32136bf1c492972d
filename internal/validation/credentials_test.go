package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/ticketapp/internal/domain"
)

func TestValidateLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     domain.FieldErrors
	}{
		{name: "valid", email: "ada@example.com", password: "secret1", want: domain.FieldErrors{}},
		{name: "missing both", want: domain.FieldErrors{FieldEmail: MsgEmailRequired, FieldPassword: MsgPasswordRequired}},
		{name: "bad email", email: "ada@example", password: "secret1", want: domain.FieldErrors{FieldEmail: MsgEmailInvalid}},
		{name: "email with space", email: "ada @example.com", password: "secret1", want: domain.FieldErrors{FieldEmail: MsgEmailInvalid}},
		{name: "short password", email: "ada@example.com", password: "12345", want: domain.FieldErrors{FieldPassword: MsgPasswordTooShort}},
		{name: "blank password", email: "ada@example.com", password: "      ", want: domain.FieldErrors{FieldPassword: MsgPasswordRequired}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateLogin(tt.email, tt.password))
		})
	}
}

func TestValidateSignup(t *testing.T) {
	assert.Empty(t, ValidateSignup("Ada Lovelace", "ada@example.com", "secret1"))

	errs := ValidateSignup(" ", "ada@example.com", "secret1")
	assert.Equal(t, domain.FieldErrors{FieldFullName: MsgFullNameRequired}, errs)
}
