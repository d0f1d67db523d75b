// Package indicator drives the activity LED. The poller pulses it on
// every sensor read; a separate per-tick countdown turns it back off a
// few ticks later, independent of scheduling state.
package indicator

import (
	"log/slog"
	"strconv"

	"github.com/stianeikeland/go-rpio/v4"
)

// DefaultPulseTicks is how long one activity blink lasts.
const DefaultPulseTicks = 2

type (
	// Driver switches the physical LED.
	Driver interface {
		Set(on bool) error
	}

	Activity struct {
		driver    Driver
		remaining int
	}

	GPIODriver struct {
		Pin string
	}

	NoopDriver struct{}
)

func NewActivity(driver Driver) *Activity {
	if driver == nil {
		driver = &NoopDriver{}
	}

	return &Activity{driver: driver}
}

// Pulse turns the LED on for the given number of ticks.
func (a *Activity) Pulse(ticks int) {
	if ticks <= 0 {
		return
	}

	a.remaining = ticks
	if err := a.driver.Set(true); err != nil {
		slog.Error("failed to turn activity LED on", "error", err)
	}
}

// Tick decays the pulse; called once per scheduling tick.
func (a *Activity) Tick() {
	if a.remaining == 0 {
		return
	}

	a.remaining--
	if a.remaining > 0 {
		return
	}

	if err := a.driver.Set(false); err != nil {
		slog.Error("failed to turn activity LED off", "error", err)
	}
}

func (d *GPIODriver) Set(on bool) error {
	if err := rpio.Open(); err != nil {
		return err
	}

	defer rpio.Close()

	pinNumber, err := strconv.Atoi(d.Pin)
	if err != nil {
		return err
	}

	pin := rpio.Pin(pinNumber)
	pin.Output()

	if on {
		pin.High()
	} else {
		pin.Low()
	}

	return nil
}

func (d *NoopDriver) Set(on bool) error {
	return nil
}
