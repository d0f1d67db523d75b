package settings

import (
	"errors"
	"testing"
)

func TestLoadAbsentRecordUsesDefaults(t *testing.T) {
	store := MemoryStore{ReadErr: errors.New("no record")}
	s := New(&store)

	s.Load()

	if s.SSID != DefaultSSID || s.Password != DefaultPassword || s.Community != DefaultCommunity {
		t.Errorf("expected compiled-in defaults, got %q/%q/%q", s.SSID, s.Password, s.Community)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := MemoryStore{}

	s := New(&store)
	s.SSID = "MyNet"
	s.Password = "Secret"
	s.Community = "public"

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// simulate a restart: a fresh Settings over the same store
	reloaded := New(&store)
	reloaded.Load()

	if reloaded.SSID != "MyNet" {
		t.Errorf("expected SSID MyNet, got %q", reloaded.SSID)
	}

	if reloaded.Password != "Secret" {
		t.Errorf("expected password Secret, got %q", reloaded.Password)
	}

	if reloaded.Community != "public" {
		t.Errorf("expected community public, got %q", reloaded.Community)
	}
}

func TestLoadWrongSizeUsesDefaults(t *testing.T) {
	store := MemoryStore{}

	s := New(&store)
	s.SSID = "MyNet"
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// truncate the persisted record
	store.Data = store.Data[:RecordSize-10]

	reloaded := New(&store)
	reloaded.Load()

	if reloaded.SSID != DefaultSSID || reloaded.Password != DefaultPassword || reloaded.Community != DefaultCommunity {
		t.Errorf("expected defaults after size mismatch, got %q/%q/%q",
			reloaded.SSID, reloaded.Password, reloaded.Community)
	}
}

func TestLoadWrongSentinelUsesDefaults(t *testing.T) {
	store := MemoryStore{}

	s := New(&store)
	s.SSID = "MyNet"
	s.Community = "private"
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	// corrupt the trailing sentinel
	store.Data[RecordSize-1] ^= 0xff

	reloaded := New(&store)
	reloaded.Load()

	// never a partially-default mix
	if reloaded.SSID != DefaultSSID || reloaded.Password != DefaultPassword || reloaded.Community != DefaultCommunity {
		t.Errorf("expected defaults after sentinel mismatch, got %q/%q/%q",
			reloaded.SSID, reloaded.Password, reloaded.Community)
	}
}

func TestOversizedFieldsTruncate(t *testing.T) {
	store := MemoryStore{}

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}

	s := New(&store)
	s.SSID = string(long)
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if len(store.Data) != RecordSize {
		t.Errorf("record must stay %d bytes, got %d", RecordSize, len(store.Data))
	}

	reloaded := New(&store)
	reloaded.Load()

	if len(reloaded.SSID) != 32 {
		t.Errorf("expected SSID truncated to 32 bytes, got %d", len(reloaded.SSID))
	}
}

func TestResetDefaultsPersists(t *testing.T) {
	store := MemoryStore{}

	s := New(&store)
	s.SSID = "MyNet"
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := s.ResetDefaults(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if store.Writes != 2 {
		t.Errorf("expected reset to persist, got %d writes", store.Writes)
	}

	reloaded := New(&store)
	reloaded.Load()

	if reloaded.SSID != DefaultSSID {
		t.Errorf("expected default SSID after reset, got %q", reloaded.SSID)
	}
}
