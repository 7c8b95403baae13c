// Package store owns the durable list of verification records. All
// implementations serialize writes so concurrent appends never lose a record.
package store

import (
	"context"

	"swiftverify/internal/models"
)

// RecordStore is the append-only record list. RemoveByID returns (nil, nil)
// when no record carries the id.
type RecordStore interface {
	ReadAll(ctx context.Context) ([]models.VerificationRecord, error)
	Append(ctx context.Context, rec models.VerificationRecord) error
	RemoveByID(ctx context.Context, id string) (*models.VerificationRecord, error)
}
