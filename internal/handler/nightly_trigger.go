package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dperera/payconfirm/internal/sweep"
)

// HandleNightlyTrigger runs the retention sweep: every transaction record
// older than the configured window is deleted in one batched write.
func (d *Dependencies) HandleNightlyTrigger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	window := sweep.DefaultWindow
	if d.Config != nil && d.Config.RetentionWindow > 0 {
		window = d.Config.RetentionWindow
	}

	now := time.Now().UTC()
	slog.Info("starting retention sweep",
		"cutoff", now.Add(-window).Format(time.RFC3339),
		"window", window.String(),
	)

	res, err := sweep.Run(ctx, now, window, d.Database)
	if err != nil {
		slog.Error("retention sweep failed", "error", err)
		WriteError(w, http.StatusInternalServerError, "Retention sweep failed: "+err.Error())
		return
	}

	if res.Deleted > 0 {
		slog.Info("retention sweep complete",
			"deleted", res.Deleted,
			"swept_total", res.SweptTotal.StringFixed(2),
		)
	} else {
		slog.Info("retention sweep complete, nothing to delete")
	}

	WriteJSON(w, http.StatusOK, map[string]any{"deleted": res.Deleted})
}
