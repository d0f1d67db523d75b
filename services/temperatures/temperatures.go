package temperatures

import (
	"log/slog"
	"net/http"

	"github.com/NathanReed/tempsentry/internal/store"
	"github.com/NathanReed/tempsentry/utils"
)

func NewHandler(st *store.SensorStore) *Handler {
	return &Handler{store: st}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/temperatures", h.handlerTemperaturesGet)
}

func (h *Handler) handlerTemperaturesGet(w http.ResponseWriter, r *http.Request) {
	slog.Debug("handlerTemperaturesGet")

	records := h.store.Records()

	results := make([]TemperatureReading, 0, len(records))
	for _, rec := range records {
		results = append(results, convertFromRecord(rec))
	}

	utils.RespondWithJSON(w, http.StatusOK, results)
}

func convertFromRecord(rec store.Record) TemperatureReading {
	connected := rec.TempDeciC != store.DisconnectedDeciC

	tr := TemperatureReading{
		Index:     rec.Index + 1,
		Address:   rec.Address.String(),
		TempDeciC: rec.TempDeciC,
		Connected: connected,
	}

	if connected {
		tr.TemperatureC = float64(rec.TempDeciC) / 10
	}

	return tr
}
