package user

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Role is the closed set of account roles. There are no free-form roles;
// anything else is rejected at parse time and by a CHECK constraint in the DB.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleISE    Role = "ISE"
	RoleOff3SO Role = "off3so"
)

var AllRoles = []Role{RoleAdmin, RoleISE, RoleOff3SO}

// ParseRole matches case-insensitively against the fixed role names.
func ParseRole(input string) (Role, error) {
	for _, r := range AllRoles {
		if strings.EqualFold(input, string(r)) {
			return r, nil
		}
	}

	return "", fmt.Errorf("invalid role. Available roles: %v", roleNames())
}

func roleNames() []string {
	names := make([]string, len(AllRoles))
	for i, r := range AllRoles {
		names[i] = string(r)
	}
	return names
}

// DisplayName is the long-form role label used in user listings.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleISE:
		return "ISE"
	case RoleOff3SO:
		return "Officer 3 Sales Operation"
	default:
		return string(r)
	}
}

type User struct {
	IDUser       int64  `json:"id_user"`
	Nama         string `json:"nama"`
	EmailNIK     string `json:"email_nik"`
	PasswordHash string `json:"-"` // never expose the hash in JSON
	Role         Role   `json:"role"`
}

const nikLength = 6

var (
	emailPattern = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

var (
	ErrNIKLength       = errors.New("NIK must be exactly 6 digits")
	ErrInvalidEmailNIK = errors.New("Email/NIK format is invalid. Use 6-digit NIK or valid email")
)

// ValidateEmailNIK accepts either an exactly-6-digit NIK or an email address.
// An all-digit identifier of the wrong length is a NIK length error, not an
// email error.
func ValidateEmailNIK(emailNIK string) error {
	if digitsOnly.MatchString(emailNIK) {
		if len(emailNIK) != nikLength {
			return ErrNIKLength
		}
		return nil
	}

	if !emailPattern.MatchString(emailNIK) {
		return ErrInvalidEmailNIK
	}

	return nil
}

// Public is the response shape for user listings: role is rendered with its
// display name, the hash is omitted entirely.
type Public struct {
	IDUser   int64  `json:"id_user"`
	Nama     string `json:"nama"`
	EmailNIK string `json:"email_nik"`
	Role     string `json:"role"`
}

func (u User) Public() Public {
	return Public{
		IDUser:   u.IDUser,
		Nama:     u.Nama,
		EmailNIK: u.EmailNIK,
		Role:     u.Role.DisplayName(),
	}
}
