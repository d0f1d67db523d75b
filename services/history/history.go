// Package history records completed polling cycles to the database
// and serves recent readings back out.
package history

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/NathanReed/tempsentry/internal/store"
	"github.com/NathanReed/tempsentry/utils"
)

const defaultHistoryLimit = 100

func NewHandler(rs ReadingStore) *Handler {
	return &Handler{store: rs}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/history", h.handlerHistoryGet)
}

// RecordCycle is wired as a poller cycle listener; it persists every
// sensor that has a valid reading.
func (h *Handler) RecordCycle(records []store.Record) {
	ctx := context.Background()
	now := time.Now().UTC()

	for _, rec := range records {
		if rec.TempDeciC == store.DisconnectedDeciC {
			continue
		}

		arg := SaveReadingParams{
			ID:        uuid.New(),
			ReadAt:    now,
			Address:   rec.Address.String(),
			TempDeciC: rec.TempDeciC,
		}

		if _, err := h.store.SaveReading(ctx, arg); err != nil {
			slog.Error("failed to save reading", "address", arg.Address, "error", err)
		}
	}
}

func (h *Handler) handlerHistoryGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerHistoryGet")

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid limit", err)
			return
		}

		limit = n
	}

	readings, err := h.store.RecentReadings(r.Context(), limit)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "failed to query readings", err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, readings)
}
