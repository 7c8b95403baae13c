package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"swiftverify/internal/models"
)

// GormStore backs the record list with Postgres, one row per record. Row
// writes are already serialized by the database, so no client-side mutex.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the connection and migrates the records table.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("store: connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("store: get sql db: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&models.VerificationRecord{}); err != nil {
		return nil, fmt.Errorf("store: migrate verification_records: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (gs *GormStore) ReadAll(ctx context.Context) ([]models.VerificationRecord, error) {
	var records []models.VerificationRecord
	if err := gs.db.WithContext(ctx).Order("created_at asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("store: read records: %w", err)
	}
	return records, nil
}

func (gs *GormStore) Append(ctx context.Context, rec models.VerificationRecord) error {
	if err := gs.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("store: insert record: %w", err)
	}
	return nil
}

func (gs *GormStore) RemoveByID(ctx context.Context, id string) (*models.VerificationRecord, error) {
	var rec models.VerificationRecord
	err := gs.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("store: find record: %w", err)
	}
	if err := gs.db.WithContext(ctx).Delete(&models.VerificationRecord{}, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("store: delete record: %w", err)
	}
	return &rec, nil
}
