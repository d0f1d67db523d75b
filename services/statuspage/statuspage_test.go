package statuspage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/NathanReed/tempsentry/internal/link"
	"github.com/NathanReed/tempsentry/internal/sensor"
	"github.com/NathanReed/tempsentry/internal/store"
)

func TestStatusPageRendersSensors(t *testing.T) {
	st := store.New(store.DefaultCapacity)
	st.Add(sensor.Address{0x28, 0xa1})
	st.Add(sensor.Address{0x28, 0xa2})
	st.SetTemperature(0, 215)
	st.SetTemperature(1, -37)

	lp := &link.StaticProvider{Info: link.Info{
		Identity:     "MyNet",
		SignalDBM:    -61,
		HardwareAddr: "aa:bb:cc:dd:ee:ff",
	}}

	h := NewHandler(st, lp)

	var buf bytes.Buffer
	h.handleStatusPage(&buf, nil)
	body := buf.String()

	if !strings.Contains(body, "200 OK") {
		t.Errorf("expected a success response, got %q", body)
	}

	for _, want := range []string{"MyNet", "-61 dBm", "aa:bb:cc:dd:ee:ff", "Sensors: 2", "21.5 C", "-3.7 C", "DS18B20"} {
		if !strings.Contains(body, want) {
			t.Errorf("status page missing %q", want)
		}
	}
}

func TestStatusPageNeverReadTemperature(t *testing.T) {
	st := store.New(store.DefaultCapacity)
	st.Add(sensor.Address{0x28, 0xa1})

	h := NewHandler(st, &link.StaticProvider{})

	var buf bytes.Buffer
	h.handleStatusPage(&buf, nil)

	if !strings.Contains(buf.String(), "n/a") {
		t.Errorf("expected n/a for a sensor with no reading, got %q", buf.String())
	}
}
