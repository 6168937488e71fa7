package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adityapw/kuitansihub/internal/authz"
	"github.com/adityapw/kuitansihub/internal/domain/kuitansi"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/http/middlewares"
	"github.com/adityapw/kuitansihub/internal/mutate"
	"github.com/adityapw/kuitansihub/internal/observability"
	"github.com/adityapw/kuitansihub/internal/pdf"
	"github.com/adityapw/kuitansihub/internal/repo/postgres"
	"github.com/adityapw/kuitansihub/internal/terbilang"
)

type KuitansiStore interface {
	GetByID(ctx context.Context, id int64) (kuitansi.Kuitansi, error)
	List(ctx context.Context) ([]kuitansi.Kuitansi, error)
	Create(ctx context.Context, k kuitansi.Kuitansi) (kuitansi.Kuitansi, error)
	ApplyChanges(ctx context.Context, id int64, columns []string, values []any) error
	Delete(ctx context.Context, id int64) error
}

type KuitansiHandler struct {
	repo KuitansiStore
	prom *observability.Prom
}

func NewKuitansiHandler(repo KuitansiStore, prom *observability.Prom) *KuitansiHandler {
	return &KuitansiHandler{repo: repo, prom: prom}
}

func (h *KuitansiHandler) GetAll(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	records, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, "Could not list kuitansi")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"data": kuitansi.SerializeAll(records)})
}

func (h *KuitansiHandler) GetByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "Kuitansi not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	k, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrKuitansiNotFound) {
			RespondNotFound(ctx, "Kuitansi not found")
			return
		}
		RespondInternal(ctx, "Could not fetch kuitansi")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"data": k.Serialize()})
}

type CreateKuitansiRequest struct {
	NomorKuitansi string   `json:"nomor_kuitansi" binding:"required"`
	Nama          string   `json:"nama" binding:"required"`
	Tanggal       string   `json:"tanggal" binding:"required"`
	Jumlah        *float64 `json:"jumlah" binding:"required"`
	Deskripsi     string   `json:"deskripsi" binding:"required"`
	Terbilang     string   `json:"terbilang"`
}

func (h *KuitansiHandler) Create(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !authz.CanCreateKuitansi(identity) {
		RespondForbidden(ctx, "Hanya ISE yang dapat membuat kuitansi")
		return
	}

	var req CreateKuitansiRequest
	if !BindJSON(ctx, &req) {
		return
	}

	tanggal, err := kuitansi.ParseDate(req.Tanggal)
	if err != nil {
		RespondBadRequest(ctx, err.Error())
		return
	}

	spelled := req.Terbilang
	if spelled == "" {
		spelled = terbilang.Spell(*req.Jumlah)
	}

	record := kuitansi.Kuitansi{
		NomorKuitansi: req.NomorKuitansi,
		Nama:          req.Nama,
		Tanggal:       tanggal,
		Jumlah:        *req.Jumlah,
		Terbilang:     spelled,
		Deskripsi:     req.Deskripsi,
		IDUser:        identity.IDUser,
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	created, err := h.repo.Create(cctx, record)
	if err != nil {
		if errors.Is(err, postgres.ErrNomorTaken) {
			RespondConflict(ctx, "Nomor kuitansi already registered")
			return
		}
		RespondInternal(ctx, "Could not create kuitansi")
		return
	}

	RespondSuccess(ctx, http.StatusCreated, gin.H{
		"message":     "Kuitansi created successfully",
		"kuitansi_id": created.IDKuitansi,
	})
}

func (h *KuitansiHandler) Edit(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "Kuitansi not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	record, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrKuitansiNotFound) {
			RespondNotFound(ctx, "Kuitansi not found")
			return
		}
		RespondInternal(ctx, "Could not fetch kuitansi")
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

	if mutate.HasField(fields, "id_kuitansi") {
		RespondBadRequest(ctx, "Kuitansi ID cannot be changed")
		return
	}

	if !authz.CanEditKuitansi(identity, record.IDUser) {
		if identity.Role == user.RoleISE {
			RespondForbidden(ctx, "ISE hanya dapat mengedit kuitansi yang dibuat sendiri")
			return
		}
		RespondForbidden(ctx, "Anda tidak memiliki izin untuk mengedit kuitansi")
		return
	}

	upd, err := mutate.KuitansiSpec(record).Apply(fields)
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
		case errors.Is(err, postgres.ErrKuitansiNotFound):
			RespondNotFound(ctx, "Kuitansi not found")
		case errors.Is(err, postgres.ErrNomorTaken):
			RespondConflict(ctx, "Nomor kuitansi already registered")
		default:
			RespondInternal(ctx, "Could not update kuitansi")
		}
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message":     "Kuitansi successfully updated",
		"kuitansi_id": id,
		"changes":     upd.Changes,
	})
}

func (h *KuitansiHandler) Delete(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !authz.CanDeleteKuitansi(identity) {
		RespondForbidden(ctx, "Hanya admin dan off3so yang dapat menghapus kuitansi")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "Kuitansi not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.repo.Delete(cctx, id); err != nil {
		if errors.Is(err, postgres.ErrKuitansiNotFound) {
			RespondNotFound(ctx, "Kuitansi not found")
			return
		}
		RespondInternal(ctx, "Could not delete kuitansi")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{"message": "Kuitansi successfully deleted"})
}

func (h *KuitansiHandler) Download(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "Kuitansi not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	k, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrKuitansiNotFound) {
			RespondNotFound(ctx, "Kuitansi not found")
			return
		}
		RespondInternal(ctx, "Could not fetch kuitansi")
		return
	}

	if !authz.CanDownloadKuitansi(identity, k.IDUser) {
		RespondForbidden(ctx, "Anda tidak memiliki izin untuk mendownload kuitansi ini")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message": "Kuitansi data retrieved for download",
		"data": gin.H{
			"kuitansi":      k.Serialize(),
			"downloaded_by": identity.Nama,
			"download_time": time.Now().Format("2006-01-02 15:04:05"),
		},
	})
}

func (h *KuitansiHandler) DownloadAll(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	if !authz.CanDownloadAllKuitansi(identity) {
		RespondForbidden(ctx, "Hanya admin dan off3so yang dapat mendownload semua kuitansi")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	records, err := h.repo.List(cctx)
	if err != nil {
		RespondInternal(ctx, "Could not list kuitansi")
		return
	}

	RespondSuccess(ctx, http.StatusOK, gin.H{
		"message":       "All kuitansi data retrieved for download",
		"total_records": len(records),
		"downloaded_by": identity.Nama,
		"download_time": time.Now().Format("2006-01-02 15:04:05"),
		"data":          kuitansi.SerializeAll(records),
	})
}

func (h *KuitansiHandler) CetakPDF(ctx *gin.Context) {
	identity, ok := middlewares.IdentityFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, "Missing identity")
		return
	}

	id, ok := parseID(ctx, "id")
	if !ok {
		RespondNotFound(ctx, "Kuitansi not found")
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	k, err := h.repo.GetByID(cctx, id)
	if err != nil {
		if errors.Is(err, postgres.ErrKuitansiNotFound) {
			RespondNotFound(ctx, "Kuitansi not found")
			return
		}
		RespondInternal(ctx, "Could not fetch kuitansi")
		return
	}

	if !authz.CanPrintKuitansi(identity, k.IDUser) {
		RespondForbidden(ctx, "Anda tidak memiliki izin untuk mencetak kuitansi ini")
		return
	}

	now := time.Now()

	var doc []byte
	err = h.prom.ObservePDF(func() error {
		var renderErr error
		doc, renderErr = pdf.Render(k, identity.Nama, now)
		return renderErr
	})
	if err != nil {
		RespondInternal(ctx, "Gagal membuat PDF: "+err.Error())
		return
	}

	filename := fmt.Sprintf("kuitansi_%s_%s.pdf", k.NomorKuitansi, now.Format("20060102_150405"))
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/pdf", doc)
}
