package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/adityapw/kuitansihub/internal/domain/user"
)

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	u := user.User{
		IDUser:   42,
		Nama:     "Budi",
		EmailNIK: "123456",
		Role:     user.RoleISE,
	}

	token, err := m.Generate(u)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}

	if claims.IDUser != 42 {
		t.Errorf("id_user = %d, want 42", claims.IDUser)
	}
	if claims.EmailNIK != "123456" {
		t.Errorf("email_nik = %q", claims.EmailNIK)
	}
	if claims.Role != "ISE" {
		t.Errorf("role = %q", claims.Role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)

	token, err := m.Generate(user.User{IDUser: 1, Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = m.Verify(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("got %v, want ErrTokenExpired", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Hour)
	verifier := NewManager("secret-b", time.Hour)

	token, err := issuer.Generate(user.User{IDUser: 1, Role: user.RoleAdmin})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("got %v, want ErrTokenInvalid", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Verify(bad); !errors.Is(err, ErrTokenInvalid) {
			t.Errorf("Verify(%q) = %v, want ErrTokenInvalid", bad, err)
		}
	}
}
