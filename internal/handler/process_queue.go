package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dperera/payconfirm/internal/models"
)

// invokeRequest represents the payload from Azure Functions Custom Handler.
type invokeRequest struct {
	Data     map[string]any `json:"Data"`
	Metadata map[string]any `json:"Metadata"`
}

// ProcessQueue handles the queue trigger that dispatches push alerts for
// accepted transactions. Dispatch is best effort: a failed send is logged
// and the message is consumed rather than retried, matching the
// fire-and-forget alert contract.
func (d *Dependencies) ProcessQueue(w http.ResponseWriter, r *http.Request) {
	var invokeReq invokeRequest
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		slog.Error("failed to read queue request body", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := json.Unmarshal(bodyBytes, &invokeReq); err != nil {
		slog.Error("failed to unmarshal queue request", "error", err)
		WriteError(w, http.StatusBadRequest, "Failed to unmarshal request")
		return
	}

	queueItemVal, ok := invokeReq.Data["queueItem"]
	if !ok {
		queueItemVal, ok = invokeReq.Data["queueitem"]
		if !ok {
			WriteError(w, http.StatusBadRequest, "Missing queueItem in Data")
			return
		}
	}

	queueItemStr, ok := queueItemVal.(string)
	if !ok {
		WriteError(w, http.StatusBadRequest, "queueItem is not a string")
		return
	}

	msg, err := decodeAlertMessage(queueItemStr)
	if err != nil {
		slog.Error("failed to decode alert message", "error", err)
		WriteError(w, http.StatusBadRequest, fmt.Sprintf("Invalid queueItem JSON: %v", err))
		return
	}

	if msg.AccountID == "" {
		slog.Warn("alert message missing accountId, dropping", "raw", queueItemStr)
		w.WriteHeader(http.StatusOK)
		return
	}

	slog.Info("dispatching alert", "account", msg.AccountID, "type", msg.Type, "amount", msg.Amount)

	if d.Alert != nil {
		if err := d.Alert.Send(r.Context(), msg); err != nil {
			// No retry: consume the message anyway.
			slog.Error("failed to dispatch alert", "account", msg.AccountID, "error", err)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func decodeAlertMessage(raw string) (models.AlertMessage, error) {
	var msg models.AlertMessage
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		return models.AlertMessage{}, err
	}
	return msg, nil
}
