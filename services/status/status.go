// Package status streams live monitor state to dashboard clients over
// a websocket.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/store"
)

func NewHandler(st *store.SensorStore, lp link.Provider, start time.Time, originPatterns []string) *Handler {
	return &Handler{
		store:          st,
		link:           lp,
		start:          start,
		originPatterns: originPatterns,
	}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/status/ws", h.handleStatusWS)
}

func (h *Handler) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	slog.Info(">>handleStatusWS: new incoming connection")
	opts := &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	}
	c, err := websocket.Accept(w, r, opts)
	if err != nil {
		slog.Error("websocket accept error:", "error", err)
		return
	}

	defer c.Close(websocket.StatusInternalError, "Unexpected connection close")

	ctx := c.CloseRead(r.Context())

	h.streamStatus(ctx, c)

	slog.Info("<<handleStatusWS")
}

func (h *Handler) streamStatus(ctx context.Context, c *websocket.Conn) {
	ticker := time.NewTicker(1 * time.Second)
	heartbeatTicker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()
	defer heartbeatTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("streamStatus: client disconnected")
			c.Close(websocket.StatusNormalClosure, "Connection closed")
			return

		case <-ticker.C:
			err := wsjson.Write(ctx, c, h.buildSystemStatus())
			if err != nil {
				slog.Error("streamStatus: error writing to client", "error", err)
				c.Close(websocket.StatusInternalError, "error writing status")
				return
			}

		case <-heartbeatTicker.C:
			err := c.Ping(ctx)
			if err != nil {
				slog.Error("streamStatus: error sending ping", "error", err)
				c.Close(websocket.StatusInternalError, "error sending ping")
				return
			}
		}
	}
}

func (h *Handler) buildSystemStatus() SystemStatus {
	info := h.link.Current()
	records := h.store.Records()

	sensors := make([]SensorStatus, 0, len(records))
	for _, rec := range records {
		sensors = append(sensors, convertFromRecord(rec))
	}

	return SystemStatus{
		UptimeSeconds: time.Since(h.start).Seconds(),
		Network:       info.Identity,
		SignalDBM:     info.SignalDBM,
		HardwareAddr:  info.HardwareAddr,
		SensorCount:   len(records),
		Sensors:       sensors,
	}
}

func convertFromRecord(rec store.Record) SensorStatus {
	ss := SensorStatus{
		Index:     rec.Index + 1,
		Address:   rec.Address.String(),
		Connected: rec.TempDeciC != store.DisconnectedDeciC,
	}

	if ss.Connected {
		ss.TemperatureC = float64(rec.TempDeciC) / 10
	}

	return ss
}
