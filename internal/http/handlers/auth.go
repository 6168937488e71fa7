package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityapw/kuitansihub/internal/auth"
	"github.com/adityapw/kuitansihub/internal/config"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/repo/postgres"
	"github.com/adityapw/kuitansihub/internal/security"
)

type UserReader interface {
	GetByEmailNIK(ctx context.Context, emailNIK string) (user.User, error)
}

type AuthHandler struct {
	users UserReader
	jwt   *auth.Manager
	cfg   config.Config
}

func NewAuthHandler(users UserReader, jwtManager *auth.Manager, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwtManager,
		cfg:   cfg,
	}
}

type LoginRequest struct {
	EmailNIK string `json:"email_nik"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil || req.EmailNIK == "" || req.Password == "" {
		RespondBadRequest(ctx, "Invalid credentials")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmailNIK(cctx, req.EmailNIK)
	if err != nil {
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondNotFound(ctx, "User not found")
			return
		}
		RespondInternal(ctx, "Could not verify credentials")
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, "Invalid credentials")
		return
	}

	token, err := h.jwt.Generate(foundUser)
	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message": "Selamat Datang " + foundUser.Nama + "!",
		"token":   token,
		"user": gin.H{
			"id_user":   foundUser.IDUser,
			"nama":      foundUser.Nama,
			"email_nik": foundUser.EmailNIK,
			"role":      string(foundUser.Role),
		},
	})
}

// GetDevToken exposes the development bypass token. Unreachable in a
// production configuration (DEV_MODE=false).
func (h *AuthHandler) GetDevToken(ctx *gin.Context) {
	if !h.cfg.DevMode {
		RespondForbidden(ctx, "This endpoint is only available in development mode")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message":   "Development token retrieved",
		"dev_token": h.cfg.DevToken,
		"usage":     "Use this token with Bearer in Authorization header for development purposes only",
	})
}
