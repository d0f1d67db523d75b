package telemetry

import (
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/NathanReed/tempsentry/internal/metrics"
)

type (
	ReadingEvent struct {
		Address   string    `json:"address"`
		TempDeciC int       `json:"temperature_deci_c"`
		ReadAt    time.Time `json:"read_at"`
	}

	Publisher struct {
		client  mqtt.Client
		topic   string
		metrics *metrics.Metrics
	}
)
