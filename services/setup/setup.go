// Package setup serves the configuration portal over the line
// protocol. It is only active when the monitor is started in setup
// mode; changes take effect on the next restart.
package setup

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/NathanReed/tempsentry/internal/lineproto"
	"github.com/NathanReed/tempsentry/internal/settings"
)

func NewHandler(s *settings.Settings) *Handler {
	return &Handler{settings: s}
}

func (h *Handler) Table() *lineproto.Table {
	return &lineproto.Table{
		Paths: []lineproto.PathHandler{
			{Path: "/config.html", Fn: h.handleConfigPage},
			{Path: "/reset.html", Fn: h.handleResetPage},
		},
		Params: []lineproto.ParamHandler{
			{Key: "ssid", Fn: h.handleSSID},
			{Key: "password", Fn: h.handlePassword},
			{Key: "community", Fn: h.handleCommunity},
		},
	}
}

func (h *Handler) handleSSID(value string) {
	h.settings.SSID = value
	h.dirty = true
}

func (h *Handler) handlePassword(value string) {
	h.settings.Password = value
	h.dirty = true
}

func (h *Handler) handleCommunity(value string) {
	h.settings.Community = value
	h.dirty = true
}

// handleConfigPage persists the record when any parameter on the
// request changed a field, then renders the form with the current
// values.
func (h *Handler) handleConfigPage(w io.Writer, params []lineproto.Param) {
	slog.Debug(">>handleConfigPage", "dirty", h.dirty)
	defer slog.Debug("<<handleConfigPage")

	saved := false
	if h.dirty {
		if err := h.settings.Save(); err != nil {
			slog.Error("failed to persist settings", "error", err)
		} else {
			saved = true
		}

		h.dirty = false
	}

	lineproto.WriteOK(w, "text/html", h.renderForm(saved))
}

func (h *Handler) handleResetPage(w io.Writer, params []lineproto.Param) {
	slog.Info("resetting settings to defaults")

	if err := h.settings.ResetDefaults(); err != nil {
		slog.Error("failed to persist default settings", "error", err)
	}

	h.dirty = false
	lineproto.WriteOK(w, "text/html", h.renderForm(true))
}

func (h *Handler) renderForm(saved bool) string {
	notice := ""
	if saved {
		notice = "<p>Saved. Restart the monitor to apply.</p>\n"
	}

	return fmt.Sprintf(`<html><head><title>tempsentry setup</title></head><body>
<h1>tempsentry setup</h1>
%s<form action="/config.html">
Network: <input name="ssid" value="%s"><br>
Password: <input name="password" value="%s"><br>
Community: <input name="community" value="%s"><br>
<input type="submit" value="Save">
</form>
<p><a href="/reset.html">Reset to defaults</a></p>
</body></html>
`, notice, h.settings.SSID, h.settings.Password, h.settings.Community)
}
