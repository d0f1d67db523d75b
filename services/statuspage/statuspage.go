// Package statuspage renders the read-only status surface served over
// the line protocol in normal run mode.
package statuspage

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/NathanReed/tempsentry/internal/lineproto"
	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/store"
)

func NewHandler(st *store.SensorStore, lp link.Provider) *Handler {
	return &Handler{
		store: st,
		link:  lp,
	}
}

// Table exposes the single root path; the reader mechanics come from
// lineproto.
func (h *Handler) Table() *lineproto.Table {
	return &lineproto.Table{
		Paths: []lineproto.PathHandler{
			{Path: "/", Fn: h.handleStatusPage},
		},
	}
}

func (h *Handler) handleStatusPage(w io.Writer, params []lineproto.Param) {
	slog.Debug(">>handleStatusPage")
	defer slog.Debug("<<handleStatusPage")

	lineproto.WriteOK(w, "text/html", h.renderPage())
}

func (h *Handler) renderPage() string {
	info := h.link.Current()
	records := h.store.Records()

	var b strings.Builder
	b.WriteString("<html><head><title>tempsentry</title></head><body>\n")
	b.WriteString("<h1>tempsentry</h1>\n")
	fmt.Fprintf(&b, "<p>Network: %s<br>Signal: %d dBm<br>Hardware address: %s<br>Sensors: %d</p>\n",
		info.Identity, info.SignalDBM, info.HardwareAddr, len(records))

	b.WriteString("<table border=1><tr><th>#</th><th>Temperature</th><th>Address</th><th>Type</th></tr>\n")
	for _, rec := range records {
		fmt.Fprintf(&b, "<tr><td>%d</td><td>%s</td><td>%s</td><td>DS18B20</td></tr>\n",
			rec.Index+1, formatTemp(rec.TempDeciC), rec.Address)
	}
	b.WriteString("</table>\n</body></html>\n")

	return b.String()
}

func formatTemp(deciC int) string {
	if deciC == store.DisconnectedDeciC {
		return "n/a"
	}

	sign := ""
	if deciC < 0 {
		sign = "-"
		deciC = -deciC
	}

	return fmt.Sprintf("%s%d.%d C", sign, deciC/10, deciC%10)
}
