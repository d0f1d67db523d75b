package indicator

import (
	"testing"
)

type fakeDriver struct {
	on      bool
	changes int
}

func (d *fakeDriver) Set(on bool) error {
	d.on = on
	d.changes++
	return nil
}

func TestPulseDecaysAfterTicks(t *testing.T) {
	driver := fakeDriver{}
	a := NewActivity(&driver)

	a.Pulse(2)
	if !driver.on {
		t.Fatal("expected the LED on after a pulse")
	}

	a.Tick()
	if !driver.on {
		t.Error("LED must stay on until the pulse expires")
	}

	a.Tick()
	if driver.on {
		t.Error("LED must turn off when the pulse expires")
	}

	// further ticks are no-ops
	a.Tick()
	if driver.changes != 2 {
		t.Errorf("expected 2 driver transitions, got %d", driver.changes)
	}
}

func TestPulseWhileActiveExtends(t *testing.T) {
	driver := fakeDriver{}
	a := NewActivity(&driver)

	a.Pulse(1)
	a.Pulse(3)

	a.Tick()
	a.Tick()
	if driver.on != true {
		t.Error("a fresh pulse must restart the countdown")
	}

	a.Tick()
	if driver.on {
		t.Error("LED must be off after the extended pulse expires")
	}
}

func TestZeroPulseIsIgnored(t *testing.T) {
	driver := fakeDriver{}
	a := NewActivity(&driver)

	a.Pulse(0)
	if driver.changes != 0 {
		t.Error("a zero-length pulse must not touch the LED")
	}
}
