package auth_test

import (
	"testing"

	auth "github.com/goliatone/go-auth-api"
	"github.com/stretchr/testify/assert"
)

func TestSignupPayload_Validate(t *testing.T) {
	valid := auth.SignupPayload{
		Email:    "user@example.com",
		Name:     "Test User",
		Password: "Password1!",
	}

	tests := []struct {
		name    string
		mutate  func(p *auth.SignupPayload)
		wantErr bool
	}{
		{
			name:    "valid payload",
			mutate:  func(p *auth.SignupPayload) {},
			wantErr: false,
		},
		{
			name:    "missing email",
			mutate:  func(p *auth.SignupPayload) { p.Email = "" },
			wantErr: true,
		},
		{
			name:    "malformed email",
			mutate:  func(p *auth.SignupPayload) { p.Email = "not-an-email" },
			wantErr: true,
		},
		{
			name:    "padded mixed-case email",
			mutate:  func(p *auth.SignupPayload) { p.Email = "  User@Example.COM " },
			wantErr: false,
		},
		{
			name:    "missing name",
			mutate:  func(p *auth.SignupPayload) { p.Name = "" },
			wantErr: true,
		},
		{
			name:    "name too short",
			mutate:  func(p *auth.SignupPayload) { p.Name = "ab" },
			wantErr: true,
		},
		{
			name:    "missing password",
			mutate:  func(p *auth.SignupPayload) { p.Password = "" },
			wantErr: true,
		},
		{
			name:    "password too short",
			mutate:  func(p *auth.SignupPayload) { p.Password = "Pw1!" },
			wantErr: true,
		},
		{
			name:    "password without digit",
			mutate:  func(p *auth.SignupPayload) { p.Password = "Password!" },
			wantErr: true,
		},
		{
			name:    "password without letter",
			mutate:  func(p *auth.SignupPayload) { p.Password = "12345678!" },
			wantErr: true,
		},
		{
			name:    "password without symbol",
			mutate:  func(p *auth.SignupPayload) { p.Password = "Password1" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := valid
			tt.mutate(&payload)

			err := payload.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSigninPayload_Validate(t *testing.T) {
	tests := []struct {
		name    string
		payload auth.SigninPayload
		wantErr bool
	}{
		{
			name: "valid payload",
			payload: auth.SigninPayload{
				Email:    "user@example.com",
				Password: "Password1!",
			},
			wantErr: false,
		},
		{
			name: "missing email",
			payload: auth.SigninPayload{
				Password: "Password1!",
			},
			wantErr: true,
		},
		{
			name: "malformed email",
			payload: auth.SigninPayload{
				Email:    "nope",
				Password: "Password1!",
			},
			wantErr: true,
		},
		{
			name: "padded mixed-case email",
			payload: auth.SigninPayload{
				Email:    " User@Example.COM  ",
				Password: "Password1!",
			},
			wantErr: false,
		},
		{
			name: "missing password",
			payload: auth.SigninPayload{
				Email: "user@example.com",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "user@example.com", auth.NormalizeEmail("  User@Example.COM "))
	assert.Equal(t, "user@example.com", auth.NormalizeEmail("user@example.com"))
	assert.Equal(t, "", auth.NormalizeEmail("   "))
}
