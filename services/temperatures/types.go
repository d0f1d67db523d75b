package temperatures

import (
	"github.com/NathanReed/tempsentry/internal/store"
)

type (
	TemperatureReading struct {
		Index        int     `json:"index"`
		Address      string  `json:"address"`
		TempDeciC    int     `json:"temperature_deci_c"`
		TemperatureC float64 `json:"temperature_c"`
		Connected    bool    `json:"connected"`
	}

	Handler struct {
		store *store.SensorStore
	}
)
