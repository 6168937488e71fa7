package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityapw/kuitansihub/internal/authz"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/http/middlewares"
	"github.com/adityapw/kuitansihub/internal/mutate"
	"github.com/adityapw/kuitansihub/internal/repo/postgres"
	"github.com/adityapw/kuitansihub/internal/security"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (user.User, error)
	List(ctx context.Context) ([]user.User, error)
	Create(ctx context.Context, nama, emailNIK, passwordHash string, role user.Role) (user.User, error)
	ApplyChanges(ctx context.Context, id int64, columns []string, values []any) error
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ResetIDSequence(ctx context.Context) error
}

type UsersHandler struct {
	repo UserStore
}

func NewUsersHandler(repo UserStore) *UsersHandler {
	return &UsersHandler{repo: repo}
}

func (h *UsersHandler) GetUsers(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	users, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, "Could not list users")
		return
	}

	data := make([]user.Public, 0, len(users))
	for _, u := range users {
		data = append(data, u.Public())
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"data": data})
}

func (h *UsersHandler) GetUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "User not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	u, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"data": u.Public()})
}

type CreateUserRequest struct {
	Nama     string `json:"nama" binding:"required"`
	EmailNIK string `json:"email_nik" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

func (h *UsersHandler) CreateUser(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !authz.CanCreateUser(identity) {
		RespondForbidden(ctx, "Only admins can perform this action")
		return
	}

	var req CreateUserRequest
	if !BindJSON(ctx, &req) {
		return
	}

	if err := user.ValidateEmailNIK(req.EmailNIK); err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	if err := security.ValidateStrength(req.Password); err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	role := user.RoleISE
	if req.Role != "" {
		parsed, err := user.ParseRole(req.Role)
		if err != nil {
			RespondBadRequest(ctx, err.Error())
			return
		}
		role = parsed
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, req.Nama, req.EmailNIK, hash, role)
	if err != nil {
		if errors.Is(err, postgres.ErrEmailNIKTaken) {
			RespondConflict(ctx, "Email/NIK already registered")
			return
		}
		RespondInternal(ctx, "Could not create user")
		return
	}

	RespondSuccess(ctx, http.StatusCreated, gin.H{
		"message": "User berhasil dibuat",
		"user_id": created.IDUser,
	})
}

func (h *UsersHandler) EditUser(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "User not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	target, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not fetch user")
		return
	}

	body, err := ctx.GetRawData()
	if err != nil {
		RespondBadRequest(ctx, "Invalid request body")
		return
	}

	fields, err := mutate.ParseFields(body)
	if err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	// identity fields are immutable via this path, checked before anything else
	if mutate.HasField(fields, "id_user") {
		RespondBadRequest(ctx, "User ID cannot be changed")
		return
	}

	if !authz.CanEditUser(identity, id) {
		RespondForbidden(ctx, "You don't have permission to perform this action")
		return
	}

	spec := mutate.UserSpec(target, authz.AllowedUserEditFields(identity))

	upd, err := spec.Apply(fields)
	if err != nil {
		var reqErr *mutate.Error
		if errors.As(err, &reqErr) {
			RespondErrorWith(ctx, http.StatusBadRequest, reqErr.Message, reqErr.Details)
			return
		}
		RespondBadRequest(ctx, err.Error())
		return
	}

	if err := h.repo.ApplyChanges(cctx, id, upd.Columns, upd.Values); err != nil {
		switch {
		case errors.Is(err, postgres.ErrUserNotFound):
			RespondNotFound(ctx, "User not found")
		case errors.Is(err, postgres.ErrEmailNIKTaken):
			RespondConflict(ctx, "Email/NIK already registered")
		default:
			RespondInternal(ctx, "Could not update user")
		}
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message": "User successfully updated",
		"user_id": id,
		"changes": upd.Changes,
	})
}

func (h *UsersHandler) DeleteUser(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !authz.CanDeleteUser(identity) {
		RespondForbidden(ctx, "Only admins can perform this action")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "User not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not delete user")
		return
	}

	// Restart the identity sequence when the table empties out. Best-effort
	// housekeeping carried over from the previous system.
	if remaining, err := h.repo.Count(cctx); err == nil && remaining == 0 {
		if err := h.repo.ResetIDSequence(cctx); err != nil {
			slog.Default().WarnContext(cctx, "could not reset user id sequence", "err", err)
		}
		RespondSuccess(ctx, http.StatusOK, gin.H{"message": "User deleted and ID sequence reset"})
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"message": "User successfully deleted"})
}

func parseID(ctx *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(param), 10, 64)
	if err != nil || id < 0 {
		return 0, false
	}
	return id, true
}
