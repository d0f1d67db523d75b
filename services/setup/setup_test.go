package setup

import (
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/NathanReed/tempsentry/internal/lineproto"
	"github.com/NathanReed/tempsentry/internal/settings"
)

func startPortal(t *testing.T, s *settings.Settings) net.Addr {
	t.Helper()

	h := NewHandler(s)
	srv := lineproto.NewServer("setup", h.Table(), time.Second, nil)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() { ln.Close() })
	go srv.Serve(ln)

	return ln.Addr()
}

func request(t *testing.T, addr net.Addr, line string) string {
	t.Helper()

	conn, err := net.Dial("tcp", addr.String())
	if err != nil {
		t.Fatal(err)
	}

	defer conn.Close()

	if _, err := conn.Write([]byte(line)); err != nil {
		t.Fatal(err)
	}

	body, err := io.ReadAll(conn)
	if err != nil {
		t.Fatal(err)
	}

	return string(body)
}

func TestSaveScenario(t *testing.T) {
	store := settings.MemoryStore{}
	s := settings.New(&store)

	addr := startPortal(t, s)

	resp := request(t, addr, "GET /config.html?ssid=MyNet&password=Secret&community=public HTTP/1.1\r\n")

	if !strings.Contains(resp, "200 OK") {
		t.Fatalf("expected success response, got %q", resp)
	}

	if s.SSID != "MyNet" || s.Password != "Secret" || s.Community != "public" {
		t.Errorf("settings not updated: %q/%q/%q", s.SSID, s.Password, s.Community)
	}

	if store.Writes != 1 {
		t.Errorf("expected one persisted record, got %d writes", store.Writes)
	}

	// the rendered form shows the new values
	if !strings.Contains(resp, `value="MyNet"`) {
		t.Errorf("form does not show the saved SSID: %q", resp)
	}
}

func TestPlainFormRequestDoesNotPersist(t *testing.T) {
	store := settings.MemoryStore{}
	s := settings.New(&store)

	addr := startPortal(t, s)

	resp := request(t, addr, "GET /config.html HTTP/1.1\r\n")

	if !strings.Contains(resp, "200 OK") {
		t.Fatalf("expected success response, got %q", resp)
	}

	if store.Writes != 0 {
		t.Errorf("expected no persistence without parameters, got %d writes", store.Writes)
	}
}

func TestResetRestoresDefaultsAndPersists(t *testing.T) {
	store := settings.MemoryStore{}
	s := settings.New(&store)
	s.SSID = "Custom"
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	addr := startPortal(t, s)

	resp := request(t, addr, "GET /reset.html HTTP/1.1\r\n")

	if !strings.Contains(resp, "200 OK") {
		t.Fatalf("expected success response, got %q", resp)
	}

	if s.SSID != settings.DefaultSSID {
		t.Errorf("expected default SSID after reset, got %q", s.SSID)
	}

	if store.Writes != 2 {
		t.Errorf("expected reset to persist, got %d writes", store.Writes)
	}
}

func TestUnknownParameterIsIgnored(t *testing.T) {
	store := settings.MemoryStore{}
	s := settings.New(&store)

	addr := startPortal(t, s)

	resp := request(t, addr, "GET /config.html?ssid=MyNet&bogus=1 HTTP/1.1\r\n")

	if !strings.Contains(resp, "200 OK") {
		t.Fatalf("expected success response, got %q", resp)
	}

	if s.SSID != "MyNet" {
		t.Errorf("expected SSID MyNet, got %q", s.SSID)
	}
}
