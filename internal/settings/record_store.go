package settings

import (
	"os"
)

// FileStore persists the settings record as a single file, standing
// in for the device byte store. Reads and writes are whole-file.
type FileStore struct {
	Path string
}

func (f *FileStore) ReadRecord() ([]byte, error) {
	return os.ReadFile(f.Path)
}

func (f *FileStore) WriteRecord(data []byte) error {
	return os.WriteFile(f.Path, data, 0o600)
}

// MemoryStore is the in-memory record store used by tests.
type MemoryStore struct {
	Data     []byte
	ReadErr  error
	WriteErr error
	Writes   int
}

func (m *MemoryStore) ReadRecord() ([]byte, error) {
	if m.ReadErr != nil {
		return nil, m.ReadErr
	}

	return m.Data, nil
}

func (m *MemoryStore) WriteRecord(data []byte) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}

	m.Data = append([]byte(nil), data...)
	m.Writes++
	return nil
}
