package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dperera/payconfirm/internal/classify"
	"github.com/dperera/payconfirm/internal/models"
	"github.com/google/uuid"
)

// IngestRequest is the payload posted by the SMS forwarder app.
type IngestRequest struct {
	AccountID string `json:"accountId"`
	SMSText   string `json:"smsText"`
}

// HandleIngest accepts a forwarded bank SMS, classifies it, and persists
// recognized transactions. A message the classifier rejects is a normal
// outcome, answered with 200 and an ignored indication.
func (d *Dependencies) HandleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		slog.Warn("ingest attempt with invalid method", "method", r.Method, "path", r.URL.Path)
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Warn("failed to read ingest body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	var req IngestRequest
	if err := json.Unmarshal(bodyBytes, &req); err != nil {
		slog.Warn("invalid ingest request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.AccountID == "" || req.SMSText == "" {
		WriteError(w, http.StatusBadRequest, "Missing accountId or smsText")
		return
	}

	// Archive the raw payload before classification so rejected messages
	// leave an audit trail too. Best effort.
	d.archivePayload(r, bodyBytes)

	result := classify.Classify(req.SMSText)
	if !result.IsBankMessage {
		slog.Info("message ignored by classifier", "account", req.AccountID, "type", result.Type)
		WriteJSON(w, http.StatusOK, map[string]string{"message": "Not a bank SMS, ignored."})
		return
	}

	rec := models.TransactionRecord{
		Amount:       result.Amount,
		Type:         result.Type,
		OriginalText: req.SMSText,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		Read:         false,
	}

	recordID, err := d.Database.AppendTransaction(r.Context(), req.AccountID, rec)
	if err != nil {
		slog.Error("failed to store transaction", "account", req.AccountID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to store transaction: "+err.Error())
		return
	}
	slog.Info("stored transaction",
		"account", req.AccountID,
		"record", recordID,
		"type", result.Type,
		"amount", result.Amount,
	)

	// Alert dispatch rides a queue so a slow push backend never blocks
	// ingestion. Failures here are logged, the record is already stored.
	if d.Queue != nil {
		msg := models.AlertMessage{
			AccountID: req.AccountID,
			Type:      string(result.Type),
			Amount:    result.Amount,
			Timestamp: rec.Timestamp,
		}
		if err := d.Queue.EnqueueMessage(r.Context(), d.Config.AlertQueue, msg); err != nil {
			slog.Error("failed to enqueue alert", "account", req.AccountID, "queue", d.Config.AlertQueue, "error", err)
		}
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Success",
		"data":    result,
	})
}

func (d *Dependencies) archivePayload(r *http.Request, payload []byte) {
	if d.Blob == nil {
		return
	}

	blobName := fmt.Sprintf("inbound/%s-%s.json",
		time.Now().UTC().Format("20060102-150405"),
		uuid.New().String()[:8],
	)
	content := string(bytes.TrimSpace(payload))

	if err := d.Blob.UploadText(r.Context(), d.Config.ArchiveContainer, blobName, content); err != nil {
		slog.Warn("failed to archive inbound payload", "blob_name", blobName, "error", err)
	}
}
