package store

import (
	"testing"

	"github.com/NathanReed/tempsentry/internal/sensor"
)

func TestAddTruncatesAtCapacity(t *testing.T) {
	s := New(2)

	a1 := sensor.Address{0x28, 1}
	a2 := sensor.Address{0x28, 2}
	a3 := sensor.Address{0x28, 3}

	if !s.Add(a1) || !s.Add(a2) {
		t.Fatal("expected the first two sensors to be accepted")
	}

	if s.Add(a3) {
		t.Error("expected the third sensor to be dropped")
	}

	if s.Count() != 2 {
		t.Errorf("expected count 2, got %d", s.Count())
	}
}

func TestNewSensorStartsDisconnected(t *testing.T) {
	s := New(4)
	s.Add(sensor.Address{0x28, 1})

	r, ok := s.Record(0)
	if !ok {
		t.Fatal("expected record 0 to exist")
	}

	if r.TempDeciC != DisconnectedDeciC {
		t.Errorf("expected sentinel %d, got %d", DisconnectedDeciC, r.TempDeciC)
	}
}

func TestSetTemperatureReplacesWholeValue(t *testing.T) {
	s := New(4)
	s.Add(sensor.Address{0x28, 1})

	s.SetTemperature(0, 215)

	r, _ := s.Record(0)
	if r.TempDeciC != 215 {
		t.Errorf("expected 215, got %d", r.TempDeciC)
	}

	// out of range writes are ignored
	s.SetTemperature(5, 999)
	s.SetTemperature(-1, 999)
	if s.Count() != 1 {
		t.Errorf("expected count 1, got %d", s.Count())
	}
}

func TestRecordOutOfRange(t *testing.T) {
	s := New(4)

	if _, ok := s.Record(0); ok {
		t.Error("expected no record in an empty store")
	}
}
