package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
)

const DefaultLogLevel = slog.LevelInfo

type Config struct {
	SensorTimeoutSeconds int      `json:"sensor_timeout_seconds"`
	SensorCapacity       int      `json:"sensor_capacity"`
	CycleTicks           int      `json:"cycle_ticks"`
	TickPeriodMS         int      `json:"tick_period_ms"`
	IdleTimeoutSeconds   int      `json:"idle_timeout_seconds"`
	ActivityLEDPin       string   `json:"activity_led_pin"`
	SettingsPath         string   `json:"settings_path"`
	SystemDescription    string   `json:"system_description"`
	SystemLocation       string   `json:"system_location"`
	OriginPatterns       []string `json:"origin_patterns"`
}

func LoadConfigSettings(filename string) (Config, error) {
	var config Config
	file, err := os.Open(filename)
	if err != nil {
		return config, err
	}

	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return config, err
	}

	err = json.Unmarshal(bytes, &config)
	if err != nil {
		return config, err
	}

	return config, nil
}
