// Package settings holds the monitor's persisted configuration: the
// network identity and secret plus the read-only community string.
// The record is read and written whole; anything that fails
// validation is replaced by the compiled-in defaults, never partially
// recovered.
package settings

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"log/slog"
)

const (
	DefaultSSID      = "tempsentry-setup"
	DefaultPassword  = "changeme"
	DefaultCommunity = "public"

	ssidFieldLen      = 32
	passwordFieldLen  = 64
	communityFieldLen = 32

	// RecordSize is the exact byte size of a persisted record:
	// declared size, three NUL-padded fields, sentinel.
	RecordSize = 2 + ssidFieldLen + passwordFieldLen + communityFieldLen + 4

	// recordSentinel marks a record written by this layout.
	recordSentinel uint32 = 0x5AFE0001
)

type (
	// RecordStore is the persistence boundary: whole-record read and
	// write only.
	RecordStore interface {
		ReadRecord() ([]byte, error)
		WriteRecord(data []byte) error
	}

	Settings struct {
		store RecordStore

		SSID      string
		Password  string
		Community string
	}
)

func New(store RecordStore) *Settings {
	s := &Settings{store: store}
	s.applyDefaults()
	return s
}

func (s *Settings) applyDefaults() {
	s.SSID = DefaultSSID
	s.Password = DefaultPassword
	s.Community = DefaultCommunity
}

// Load reads the persisted record. A missing, short, oversized or
// sentinel-mismatched record is not an error: the compiled-in
// defaults are used and the monitor carries on.
func (s *Settings) Load() {
	data, err := s.store.ReadRecord()
	if err != nil {
		slog.Warn("no persisted settings, using defaults", "error", err)
		s.applyDefaults()
		return
	}

	if err := s.decode(data); err != nil {
		slog.Warn("persisted settings invalid, using defaults", "error", err)
		s.applyDefaults()
	}
}

// Save persists the whole record.
func (s *Settings) Save() error {
	slog.Info("saving settings", "ssid", s.SSID)
	return s.store.WriteRecord(s.encode())
}

// ResetDefaults restores the compiled-in values and persists them.
func (s *Settings) ResetDefaults() error {
	s.applyDefaults()
	return s.Save()
}

func (s *Settings) encode() []byte {
	buf := make([]byte, 0, RecordSize)
	buf = binary.BigEndian.AppendUint16(buf, RecordSize)
	buf = appendPadded(buf, s.SSID, ssidFieldLen)
	buf = appendPadded(buf, s.Password, passwordFieldLen)
	buf = appendPadded(buf, s.Community, communityFieldLen)
	buf = binary.BigEndian.AppendUint32(buf, recordSentinel)
	return buf
}

func (s *Settings) decode(data []byte) error {
	if len(data) != RecordSize {
		return fmt.Errorf("record is %d bytes, expected %d", len(data), RecordSize)
	}

	declared := binary.BigEndian.Uint16(data[:2])
	if declared != RecordSize {
		return fmt.Errorf("record declares %d bytes, expected %d", declared, RecordSize)
	}

	sentinel := binary.BigEndian.Uint32(data[RecordSize-4:])
	if sentinel != recordSentinel {
		return fmt.Errorf("record sentinel %#x, expected %#x", sentinel, recordSentinel)
	}

	offset := 2
	s.SSID = trimPadded(data[offset : offset+ssidFieldLen])
	offset += ssidFieldLen
	s.Password = trimPadded(data[offset : offset+passwordFieldLen])
	offset += passwordFieldLen
	s.Community = trimPadded(data[offset : offset+communityFieldLen])

	return nil
}

// appendPadded writes a NUL-padded fixed-width field, truncating
// values that do not fit.
func appendPadded(buf []byte, s string, width int) []byte {
	field := make([]byte, width)
	copy(field, s)
	return append(buf, field...)
}

func trimPadded(field []byte) string {
	if i := bytes.IndexByte(field, 0); i >= 0 {
		field = field[:i]
	}

	return string(field)
}
