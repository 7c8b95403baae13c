package store

import (
	"context"
	"sync"

	"swiftverify/internal/models"
)

// MemStore is the process-local variant: nothing survives a restart. Useful
// for tests and for deployments that treat submissions as transient.
type MemStore struct {
	mu      sync.Mutex
	records []models.VerificationRecord
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (ms *MemStore) ReadAll(ctx context.Context) ([]models.VerificationRecord, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]models.VerificationRecord, len(ms.records))
	copy(out, ms.records)
	return out, nil
}

func (ms *MemStore) Append(ctx context.Context, rec models.VerificationRecord) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records = append(ms.records, rec)
	return nil
}

func (ms *MemStore) RemoveByID(ctx context.Context, id string) (*models.VerificationRecord, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for i, rec := range ms.records {
		if rec.ID == id {
			removed := rec
			ms.records = append(ms.records[:i], ms.records[i+1:]...)
			return &removed, nil
		}
	}
	return nil, nil
}
