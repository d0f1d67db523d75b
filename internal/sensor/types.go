package sensor

import "time"

const (
	DRIVERTYPE_DS18B20 string = "DS18B20"

	// AddressLen is the size of a full 1-Wire ROM code: family byte,
	// 48-bit serial, CRC byte.
	AddressLen = 8
)

type (
	// Address is the 8-byte bus address of a discovered device.
	Address [AddressLen]byte

	Config struct {
		ReadTimeout time.Duration
	}

	// Sensors is the bus driver boundary. Discover enumerates the
	// temperature devices present at boot; ReadTemperature issues a
	// single blocking conversion against one of them.
	Sensors interface {
		Discover() ([]Address, error)
		ReadTemperature(addr Address) (float64, error)
	}

	HardwareSensors struct {
		config Config
	}

	MockSensors struct {
		Addresses    []Address
		Temperatures map[Address]float64
		Failing      map[Address]bool
		ReadCounts   map[Address]int
	}
)
