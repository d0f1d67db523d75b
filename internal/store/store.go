// Package store holds the fixed-capacity table of discovered sensors
// and their most recent readings. The table is sized once at boot and
// written by a single poller; readers always observe whole values.
package store

import (
	"log/slog"
	"sync"

	"github.com/NathanReed/tempsentry/internal/sensor"
)

// DefaultCapacity bounds the number of sensors tracked for the
// process lifetime.
const DefaultCapacity = 16

// DisconnectedDeciC marks a sensor that has never produced a valid
// reading, in tenths of a degree centigrade.
const DisconnectedDeciC = -1270

type (
	// Record is one sensor's slot in the table. Address is fixed at
	// discovery; TempDeciC holds the last successful reading in
	// tenths of a degree centigrade.
	Record struct {
		Address   sensor.Address
		TempDeciC int
		Index     int
	}

	SensorStore struct {
		mu       sync.RWMutex
		capacity int
		records  []Record
	}
)

func New(capacity int) *SensorStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &SensorStore{
		capacity: capacity,
		records:  make([]Record, 0, capacity),
	}
}

// Add registers a discovered sensor in round-robin order. Devices past
// capacity are dropped with a log line, never an error.
func (s *SensorStore) Add(addr sensor.Address) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.records) >= s.capacity {
		slog.Warn("sensor table full, ignoring device", "address", addr, "capacity", s.capacity)
		return false
	}

	s.records = append(s.records, Record{
		Address:   addr,
		TempDeciC: DisconnectedDeciC,
		Index:     len(s.records),
	})

	return true
}

func (s *SensorStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.records)
}

// Record returns the sensor at 0-based index i.
func (s *SensorStore) Record(i int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i < 0 || i >= len(s.records) {
		return Record{}, false
	}

	return s.records[i], true
}

// Records returns a snapshot of the whole table.
func (s *SensorStore) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// SetTemperature replaces the stored reading for sensor i, whole-value.
func (s *SensorStore) SetTemperature(i int, deciC int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.records) {
		return
	}

	s.records[i].TempDeciC = deciC
}
