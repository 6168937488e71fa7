package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// All responses share the {status, message?, data?, ...} envelope. Extra
// top-level keys (token, changes, invalid_fields, ...) ride alongside.

func RespondSuccess(ctx *gin.Context, status int, payload gin.H) {
	body := gin.H{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	ctx.JSON(status, body)
}

func RespondError(ctx *gin.Context, status int, message string) {
	RespondErrorWith(ctx, status, message, nil)
}

func RespondErrorWith(ctx *gin.Context, status int, message string, extra map[string]any) {
	body := gin.H{
		"status":  "error",
		"message": message,
	}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(status, body)
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondForbidden(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusForbidden, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, message)
}

func RespondConflict(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusConflict, message)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, message)
}
