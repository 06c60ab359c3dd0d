package integrity

import (
	"context"
	"errors"

	"receiving-manager/core/storage"
	"receiving-manager/feature/integrity/checks"
	"receiving-manager/feature/receiving/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrStorageUnavailable is returned by storage checks when no client is configured.
	ErrStorageUnavailable = errors.New("storage is not configured")
	// ErrDatabaseUnavailable is returned by schema checks when no database is connected.
	ErrDatabaseUnavailable = errors.New("database is not connected")
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	region string
	logger *zap.Logger
	db     *gorm.DB
}

// NewService creates a new integrity service. Either backend may be nil.
func NewService(client storage.Client, bucket, region string, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger,
		db:     db,
	}
}

// Bucket returns the bucket the storage checks run against.
func (s *Service) Bucket() string {
	return s.bucket
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageUnavailable
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageUnavailable
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// EnsureBucket creates the bucket when it does not exist and reports whether it did.
func (s *Service) EnsureBucket(ctx context.Context) (bool, error) {
	if s.client == nil {
		return false, ErrStorageUnavailable
	}
	created, err := storage.EnsureBucket(ctx, s.client, s.bucket, s.region)
	if err != nil {
		return false, err
	}
	if created {
		s.logger.Info("Created bucket", zap.String("bucket", s.bucket))
	}
	return created, nil
}

// CheckSchema verifies the receiving tables against the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	if s.db == nil {
		return nil, ErrDatabaseUnavailable
	}
	return checks.CheckSchema(s.db, models.All()...)
}

// Migrate creates or updates the receiving tables.
func (s *Service) Migrate() error {
	if s.db == nil {
		return ErrDatabaseUnavailable
	}
	return s.db.AutoMigrate(models.All()...)
}
