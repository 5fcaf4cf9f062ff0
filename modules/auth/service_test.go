package auth

import (
	"net/mail"
	"testing"
)

// Invitation emails are validated with net/mail; this pins down the accepted
// shapes so a library change does not silently loosen them.
func TestEmailValidation(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "valid email", email: "user@example.com", want: true},
		{name: "valid email with subdomain", email: "user@mail.example.com", want: true},
		{name: "valid email with plus", email: "user+tag@example.com", want: true},
		{name: "missing @", email: "userexample.com", want: false},
		{name: "missing domain", email: "user@", want: false},
		{name: "missing local part", email: "@example.com", want: false},
		{name: "empty string", email: "", want: false},
		{name: "multiple @", email: "user@@example.com", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mail.ParseAddress(tt.email)
			if got := err == nil; got != tt.want {
				t.Errorf("ParseAddress(%q) accepted = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
