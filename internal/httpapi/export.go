// Package httpapi serves the plain HTTP routes next to the Connect service:
// bill downloads, health and metrics.
package httpapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mmynk/fairsplit/internal/auth"
	"github.com/mmynk/fairsplit/internal/export"
	"github.com/mmynk/fairsplit/internal/middleware"
	"github.com/mmynk/fairsplit/internal/models"
	"github.com/mmynk/fairsplit/internal/storage"
)

// utf8BOM prefixes text downloads.
const utf8BOM = "\uFEFF"

// ExportHandler serves bill downloads.
type ExportHandler struct {
	store  storage.Store
	tokens *auth.JWTManager
	now    func() time.Time
}

// NewExportHandler creates a new export handler.
func NewExportHandler(store storage.Store, tokens *auth.JWTManager) *ExportHandler {
	return &ExportHandler{store: store, tokens: tokens, now: time.Now}
}

// Routes returns the router for bill download endpoints
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{billID}/summary.txt", h.Summary)
	r.Get("/{billID}/backup.json", h.Backup)

	return r
}

// Summary handles GET /bills/{billID}/summary.txt
func (h *ExportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}
	now := h.now()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", attachment(export.SummaryFilename(now)))
	w.Write([]byte(utf8BOM + export.Summary(bill, now)))
}

// Backup handles GET /bills/{billID}/backup.json
func (h *ExportHandler) Backup(w http.ResponseWriter, r *http.Request) {
	bill, ok := h.loadBill(w, r)
	if !ok {
		return
	}
	now := h.now()

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", attachment(export.BackupFilename(now)))
	if err := export.WriteBackup(w, bill, now); err != nil {
		slog.Error("Backup export failed", "bill_id", bill.ID, "error", err)
	}
}

// loadBill authorizes the request and loads the bill named in the URL.
// The token comes from the Authorization header or the token query parameter,
// so download links work in a browser.
func (h *ExportHandler) loadBill(w http.ResponseWriter, r *http.Request) (*models.Bill, bool) {
	billID := chi.URLParam(r, "billID")

	token := r.URL.Query().Get("token")
	if token == "" {
		var err error
		if token, err = middleware.BearerToken(r.Header.Get("Authorization")); err != nil {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return nil, false
		}
	}
	if err := h.tokens.Authorize(token, billID); err != nil {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return nil, false
	}

	bill, err := h.store.GetBill(r.Context(), billID)
	if errors.Is(err, storage.ErrNotFound) {
		http.Error(w, "bill not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		slog.Error("Export failed to load bill", "bill_id", billID, "error", err)
		http.Error(w, "failed to load bill", http.StatusInternalServerError)
		return nil, false
	}
	return bill, true
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}
