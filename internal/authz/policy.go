// Package authz is the stateless authorization policy: given a resolved
// identity, an action and (for ownership-scoped actions) the resource owner,
// it decides allow or deny. Denials are never downgraded to partial success;
// handlers surface them as 403 with a role-specific message.
package authz

import (
	"github.com/adityapw/kuitansihub/internal/domain/user"
)

func CanCreateKuitansi(u user.User) bool {
	return u.Role == user.RoleISE
}

// CanEditKuitansi allows admins on any record and ISE only on records they own.
func CanEditKuitansi(u user.User, ownerID int64) bool {
	switch u.Role {
	case user.RoleAdmin:
		return true
	case user.RoleISE:
		return u.IDUser == ownerID
	default:
		return false
	}
}

func CanDeleteKuitansi(u user.User) bool {
	return u.Role == user.RoleAdmin || u.Role == user.RoleOff3SO
}

// CanDownloadKuitansi mirrors CanPrintKuitansi: the owning creator may fetch
// their own receipt alongside the administrative roles.
func CanDownloadKuitansi(u user.User, ownerID int64) bool {
	if u.Role == user.RoleAdmin || u.Role == user.RoleOff3SO {
		return true
	}

	return u.IDUser == ownerID
}

func CanDownloadAllKuitansi(u user.User) bool {
	return u.Role == user.RoleAdmin || u.Role == user.RoleOff3SO
}

// CanPrintKuitansi additionally lets the owning creator print their own
// receipt, regardless of role.
func CanPrintKuitansi(u user.User, ownerID int64) bool {
	if u.Role == user.RoleAdmin || u.Role == user.RoleOff3SO {
		return true
	}

	return u.IDUser == ownerID
}

func CanCreateUser(u user.User) bool {
	return u.Role == user.RoleAdmin
}

func CanDeleteUser(u user.User) bool {
	return u.Role == user.RoleAdmin
}

// CanEditUser allows admins on any target and everyone else only on
// themselves. Which fields a self-edit may touch is decided separately by
// AllowedUserEditFields.
func CanEditUser(u user.User, targetID int64) bool {
	if u.Role == user.RoleAdmin {
		return true
	}

	return u.IDUser == targetID
}

// AllowedUserEditFields is the per-role whitelist for the user edit endpoint:
// admins may change any mutable field, everyone else exactly the password.
func AllowedUserEditFields(u user.User) []string {
	if u.Role == user.RoleAdmin {
		return []string{"nama", "email_nik", "password", "role"}
	}

	return []string{"password"}
}
