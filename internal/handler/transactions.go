package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dperera/payconfirm/internal/models"
)

// HandleListTransactions returns all records for one account in arrival order.
func (d *Dependencies) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		WriteError(w, http.StatusBadRequest, "Missing accountId")
		return
	}

	records, err := d.Database.ListTransactions(r.Context(), accountID)
	if err != nil {
		slog.Error("failed to list transactions", "account", accountID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to list transactions: "+err.Error())
		return
	}

	if records == nil {
		records = []models.StoredTransaction{}
	}
	slog.Info("listed transactions", "account", accountID, "count", len(records))
	WriteJSON(w, http.StatusOK, records)
}

type markReadRequest struct {
	AccountID string `json:"accountId"`
	RecordID  string `json:"recordId"`
}

// HandleMarkRead flips the read flag on a single record once the consumer
// app has acknowledged it.
func (d *Dependencies) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("invalid mark-read request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AccountID == "" || req.RecordID == "" {
		WriteError(w, http.StatusBadRequest, "Missing accountId or recordId")
		return
	}

	if err := d.Database.MarkRead(r.Context(), req.AccountID, req.RecordID); err != nil {
		slog.Error("failed to mark transaction read", "account", req.AccountID, "record", req.RecordID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to mark transaction read: "+err.Error())
		return
	}

	slog.Info("marked transaction read", "account", req.AccountID, "record", req.RecordID)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
