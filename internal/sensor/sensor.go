package sensor

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrDisconnected is reported when a device answers a conversion
// request with the bus power-on value instead of a measurement.
var ErrDisconnected = errors.New("sensor disconnected")

// disconnectedCelsius is the DS18B20 power-on/fault register value.
const disconnectedCelsius = -127.0

func NewSensors(readTimeoutSeconds int, useMock bool) (Sensors, error) {
	slog.Debug("NewSensors", "mock", useMock)

	config := Config{
		ReadTimeout: time.Duration(readTimeoutSeconds) * time.Second,
	}

	if useMock {
		m := NewMockSensors(
			Address{0x28, 0x00, 0x00, 0x05, 0xe2, 0xfd, 0xc3, 0x00},
			Address{0x28, 0x00, 0x00, 0x05, 0xe2, 0xfd, 0xc4, 0x00},
		)
		m.Temperatures[m.Addresses[0]] = 21.5
		m.Temperatures[m.Addresses[1]] = 19.0
		return m, nil
	}

	return &HardwareSensors{config: config}, nil
}

// ParseAddress converts a sysfs device id like "28-000005e2fdc3" into
// the full 8-byte ROM code, recomputing the trailing CRC byte that the
// kernel id omits.
func ParseAddress(id string) (Address, error) {
	var addr Address

	family, serial, found := strings.Cut(id, "-")
	if !found || len(family) != 2 || len(serial) != 12 {
		return addr, fmt.Errorf("malformed device id %q", id)
	}

	fb, err := hex.DecodeString(family)
	if err != nil {
		return addr, fmt.Errorf("malformed device id %q: %w", id, err)
	}

	sb, err := hex.DecodeString(serial)
	if err != nil {
		return addr, fmt.Errorf("malformed device id %q: %w", id, err)
	}

	addr[0] = fb[0]
	copy(addr[1:7], sb)
	addr[7] = crc8(addr[:7])

	return addr, nil
}

// String renders the address back in sysfs form, the shape the bus
// driver addresses devices by.
func (a Address) String() string {
	return fmt.Sprintf("%02x-%s", a[0], hex.EncodeToString(a[1:7]))
}

// Octets returns the raw 8 bytes for wire encodings.
func (a Address) Octets() []byte {
	b := make([]byte, AddressLen)
	copy(b, a[:])
	return b
}

// crc8 is the Dallas/Maxim 1-Wire CRC over the first seven ROM bytes.
func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		for i := 0; i < 8; i++ {
			mix := (crc ^ b) & 0x01
			crc >>= 1
			if mix != 0 {
				crc ^= 0x8c
			}
			b >>= 1
		}
	}
	return crc
}
