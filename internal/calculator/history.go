package calculator

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"renal-calculator/internal/auth"
	"renal-calculator/internal/models"

	"github.com/sirupsen/logrus"
)

// HistoryLister reads back saved calculations.
type HistoryLister interface {
	List(ctx context.Context, userID int64, limit int) ([]models.Calculation, error)
}

type historyEntry struct {
	ID        int64           `json:"id"`
	Kind      string          `json:"kind"`
	Input     json.RawMessage `json:"input"`
	Result    json.RawMessage `json:"result"`
	CreatedAt string          `json:"created_at"`
}

const maxHistoryLimit = 500

// HistoryHandler lists the caller's calculations, newest first.
func HistoryHandler(store HistoryLister, log logrus.FieldLogger, defaultLimit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		limit := defaultLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}
		if limit > maxHistoryLimit {
			limit = maxHistoryLimit
		}

		calcs, err := store.List(r.Context(), userID, limit)
		if err != nil {
			log.WithError(err).Error("list history")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		entries := make([]historyEntry, len(calcs))
		for i, c := range calcs {
			entries[i] = historyEntry{
				ID:        c.ID,
				Kind:      c.Kind,
				Input:     json.RawMessage(c.Input),
				Result:    json.RawMessage(c.Result),
				CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339),
			}
		}
		writeJSON(w, log, map[string]any{"calculations": entries})
	}
}
