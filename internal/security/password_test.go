package security

import (
	"errors"
	"testing"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret1!")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if hash == "Secret1!" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := CheckPassword(hash, "Secret1!"); err != nil {
		t.Fatalf("CheckPassword rejected the correct password: %v", err)
	}

	if err := CheckPassword(hash, "WrongPass1!"); err == nil {
		t.Fatalf("CheckPassword accepted a wrong password")
	}
}

func TestValidateStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"valid", "Abcdef1!", true},
		{"valid_long", "LongerPassw0rd?", true},
		{"too_short", "Ab1!", false},
		{"no_upper", "abcdef1!", false},
		{"no_lower", "ABCDEF1!", false},
		{"no_digit", "Abcdefg!", false},
		{"no_symbol", "Abcdefg1", false},
		{"disallowed_char", "Abcdef1! ", false},
		{"disallowed_symbol", "Abcdef1#", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStrength(tt.password)

			if tt.wantOK && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}

			if !tt.wantOK {
				if err == nil {
					t.Fatalf("expected rejection")
				}
				if !errors.Is(err, ErrWeakPassword) {
					t.Fatalf("expected ErrWeakPassword, got %v", err)
				}
			}
		})
	}
}
