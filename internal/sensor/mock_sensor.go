package sensor

import (
	"log/slog"
)

func NewMockSensors(addresses ...Address) *MockSensors {
	return &MockSensors{
		Addresses:    addresses,
		Temperatures: make(map[Address]float64),
		Failing:      make(map[Address]bool),
		ReadCounts:   make(map[Address]int),
	}
}

func (m *MockSensors) Discover() ([]Address, error) {
	slog.Debug(">>Discover (mock)")
	defer slog.Debug("<<Discover (mock)")

	return m.Addresses, nil
}

func (m *MockSensors) ReadTemperature(addr Address) (float64, error) {
	m.ReadCounts[addr]++

	if m.Failing[addr] {
		return 0, ErrDisconnected
	}

	t, ok := m.Temperatures[addr]
	if !ok {
		t = 10.0
	}

	return t, nil
}
