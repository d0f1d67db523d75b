package sensor

import (
	"log/slog"

	"github.com/yryz/ds18b20"
)

func (s *HardwareSensors) Discover() ([]Address, error) {
	slog.Debug(">>Discover")
	defer slog.Debug("<<Discover")

	ids, err := ds18b20.Sensors()
	if err != nil {
		return nil, err
	}

	addresses := make([]Address, 0, len(ids))
	for _, id := range ids {
		addr, err := ParseAddress(id)
		if err != nil {
			slog.Error("skipping device with malformed id", "id", id, "error", err)
			continue
		}

		addresses = append(addresses, addr)
	}

	return addresses, nil
}

func (s *HardwareSensors) ReadTemperature(addr Address) (float64, error) {
	t, err := ds18b20.Temperature(addr.String())
	if err != nil {
		slog.Error("failed to read sensor", "address", addr, "error", err)
		return 0, err
	}

	// the bus reports the power-on register value when the device has
	// fallen off mid-conversion
	if t <= disconnectedCelsius {
		return 0, ErrDisconnected
	}

	return t, nil
}
