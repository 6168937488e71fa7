package authz

import (
	"reflect"
	"testing"

	"github.com/adityapw/kuitansihub/internal/domain/user"
)

func mkUser(id int64, role user.Role) user.User {
	return user.User{IDUser: id, Role: role}
}

func TestKuitansiPolicy(t *testing.T) {
	admin := mkUser(1, user.RoleAdmin)
	ise := mkUser(2, user.RoleISE)
	off3so := mkUser(3, user.RoleOff3SO)

	if !CanCreateKuitansi(ise) {
		t.Error("ISE should create kuitansi")
	}
	if CanCreateKuitansi(admin) || CanCreateKuitansi(off3so) {
		t.Error("only ISE may create kuitansi")
	}

	// edit: admin anywhere, ISE own records only
	if !CanEditKuitansi(admin, 99) {
		t.Error("admin should edit any kuitansi")
	}
	if !CanEditKuitansi(ise, 2) {
		t.Error("ISE should edit own kuitansi")
	}
	if CanEditKuitansi(ise, 99) {
		t.Error("ISE must not edit others' kuitansi")
	}
	if CanEditKuitansi(off3so, 3) {
		t.Error("off3so must not edit kuitansi, even own")
	}

	for _, u := range []user.User{admin, off3so} {
		if !CanDeleteKuitansi(u) {
			t.Errorf("%s should delete kuitansi", u.Role)
		}
		if !CanDownloadAllKuitansi(u) {
			t.Errorf("%s should download all kuitansi", u.Role)
		}
	}
	if CanDeleteKuitansi(ise) || CanDownloadAllKuitansi(ise) {
		t.Error("ISE must not delete or bulk-download")
	}

	// download-one and print: administrative roles plus the owner
	if !CanDownloadKuitansi(ise, 2) || !CanPrintKuitansi(ise, 2) {
		t.Error("owner should download and print own kuitansi")
	}
	if CanDownloadKuitansi(ise, 99) || CanPrintKuitansi(ise, 99) {
		t.Error("ISE must not touch others' kuitansi documents")
	}
	if !CanDownloadKuitansi(off3so, 99) || !CanPrintKuitansi(admin, 99) {
		t.Error("administrative roles should access any kuitansi document")
	}
}

func TestUserPolicy(t *testing.T) {
	admin := mkUser(1, user.RoleAdmin)
	ise := mkUser(2, user.RoleISE)

	if !CanCreateUser(admin) || !CanDeleteUser(admin) {
		t.Error("admin should manage users")
	}
	if CanCreateUser(ise) || CanDeleteUser(ise) {
		t.Error("non-admin must not manage users")
	}

	if !CanEditUser(admin, 99) {
		t.Error("admin should edit anyone")
	}
	if !CanEditUser(ise, 2) {
		t.Error("self-edit should be allowed")
	}
	if CanEditUser(ise, 99) {
		t.Error("non-admin must not edit others")
	}
}

func TestAllowedUserEditFields(t *testing.T) {
	admin := mkUser(1, user.RoleAdmin)
	ise := mkUser(2, user.RoleISE)

	want := []string{"nama", "email_nik", "password", "role"}
	if got := AllowedUserEditFields(admin); !reflect.DeepEqual(got, want) {
		t.Errorf("admin fields = %v, want %v", got, want)
	}

	if got := AllowedUserEditFields(ise); !reflect.DeepEqual(got, []string{"password"}) {
		t.Errorf("non-admin fields = %v, want [password]", got)
	}
}
