package mutate

import (
	"encoding/json"
	"strconv"

	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/security"
)

// Redacted replaces both sides of a password change in the change log; the
// log never contains the plaintext or the hash.
const Redacted = "[HASHED]"

// UserSpec is the mutation whitelist for one user record. allowed comes from
// the authorization policy: admins may submit any mutable field, everyone
// else exactly the password.
func UserSpec(current user.User, allowed []string) Spec {
	return Spec{
		Immutable: map[string]*Error{
			"id_user": {Message: "User ID cannot be changed"},
		},
		Allowed: allowed,
		DisallowedErr: func(invalid []string) *Error {
			return &Error{
				Message: "Invalid fields for this user role",
				Details: map[string]any{
					"invalid_fields": invalid,
					"allowed_fields": allowed,
				},
			}
		},
		Rules: map[string]Rule{
			"nama": {
				Column: "nama",
				Old:    func() string { return current.Nama },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeString("nama", raw)
					if err != nil {
						return nil, "", err
					}
					return v, v, nil
				},
			},
			"email_nik": {
				Column: "email_nik",
				Old:    func() string { return current.EmailNIK },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeString("email_nik", raw)
					if err != nil {
						return nil, "", err
					}
					if err := user.ValidateEmailNIK(v); err != nil {
						return nil, "", err
					}
					return v, v, nil
				},
			},
			"password": {
				Column: "password",
				Old:    func() string { return Redacted },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeString("password", raw)
					if err != nil {
						return nil, "", err
					}
					if err := security.ValidateStrength(v); err != nil {
						return nil, "", err
					}
					hash, err := security.HashPassword(v)
					if err != nil {
						return nil, "", err
					}
					return hash, Redacted, nil
				},
			},
			"role": {
				Column: "role",
				Old:    func() string { return string(current.Role) },
				New: func(raw json.RawMessage) (any, string, error) {
					v, err := DecodeString("role", raw)
					if err != nil {
						return nil, "", err
					}
					role, err := user.ParseRole(v)
					if err != nil {
						return nil, "", err
					}
					return string(role), string(role), nil
				},
			},
		},
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
