package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"swiftverify/internal/models"
)

// FileStore keeps all records in one JSON document. Every operation is a
// whole-document read-modify-write, so a single mutex is the serialization
// point; the document is replaced atomically via a temp file and rename.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the document as an empty list if it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path}
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := fs.writeLocked([]models.VerificationRecord{}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("store: stat %s: %w", path, err)
	}
	return fs, nil
}

func (fs *FileStore) ReadAll(ctx context.Context) ([]models.VerificationRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.readLocked()
}

func (fs *FileStore) Append(ctx context.Context, rec models.VerificationRecord) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.readLocked()
	if err != nil {
		return err
	}
	records = append(records, rec)
	return fs.writeLocked(records)
}

func (fs *FileStore) RemoveByID(ctx context.Context, id string) (*models.VerificationRecord, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	records, err := fs.readLocked()
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if rec.ID == id {
			removed := rec
			records = append(records[:i], records[i+1:]...)
			if err := fs.writeLocked(records); err != nil {
				return nil, err
			}
			return &removed, nil
		}
	}
	return nil, nil
}

func (fs *FileStore) readLocked() ([]models.VerificationRecord, error) {
	raw, err := os.ReadFile(fs.path)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", fs.path, err)
	}
	if len(raw) == 0 {
		return []models.VerificationRecord{}, nil
	}
	var records []models.VerificationRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", fs.path, err)
	}
	return records, nil
}

func (fs *FileStore) writeLocked(records []models.VerificationRecord) error {
	raw, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("store: marshal records: %w", err)
	}

	dir := filepath.Dir(fs.path)
	tmp, err := os.CreateTemp(dir, ".data-*.json")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", fs.path, err)
	}
	return nil
}
