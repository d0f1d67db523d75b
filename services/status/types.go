package status

import (
	"time"

	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/store"
)

type (
	SensorStatus struct {
		Index        int     `json:"index"`
		Address      string  `json:"address"`
		TemperatureC float64 `json:"temperature_c"`
		Connected    bool    `json:"connected"`
	}

	SystemStatus struct {
		UptimeSeconds float64        `json:"uptime_seconds"`
		Network       string         `json:"network"`
		SignalDBM     int            `json:"signal_dbm"`
		HardwareAddr  string         `json:"hardware_addr"`
		SensorCount   int            `json:"sensor_count"`
		Sensors       []SensorStatus `json:"sensors"`
	}

	Handler struct {
		store          *store.SensorStore
		link           link.Provider
		start          time.Time
		originPatterns []string
	}
)
