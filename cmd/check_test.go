package cmd

import (
	"context"
	"testing"

	"receiving-manager/core/storage/mocks"
	"receiving-manager/feature/integrity"
	"receiving-manager/feature/integrity/checks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type stubSchema struct {
	migrated   bool
	migrateErr error
	report     *checks.SchemaReport
	checkErr   error
}

func (s *stubSchema) Migrate() error {
	s.migrated = true
	return s.migrateErr
}

func (s *stubSchema) CheckSchema() (*checks.SchemaReport, error) {
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	if s.report == nil {
		return &checks.SchemaReport{Matched: true, Tables: map[string]checks.TableReport{}}, nil
	}
	return s.report, nil
}

func TestCheckDatabase(t *testing.T) {
	missing := &checks.SchemaReport{Tables: map[string]checks.TableReport{
		"receipts": {MissingColumns: []string{"pack_count"}, Status: "error"},
	}}
	broken := &checks.SchemaReport{Tables: map[string]checks.TableReport{}, Errors: []string{"Failed to inspect table receipts"}}

	tests := []struct {
		name       string
		schema     *stubSchema
		migrate    bool
		wantStatus string
	}{
		{"Complete", &stubSchema{}, false, "ok"},
		{"Missing columns", &stubSchema{report: missing}, false, "missing"},
		{"Inspect error", &stubSchema{report: broken}, false, "error"},
		{"Check error", &stubSchema{checkErr: assert.AnError}, false, "error"},
		{"Migrate", &stubSchema{}, true, "ok"},
		{"Migrate error", &stubSchema{migrateErr: assert.AnError}, true, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := checkDatabase(tt.schema, tt.migrate)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.migrate, tt.schema.migrated)
		})
	}
}

func emptyListing() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func fullListing(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, 1)
	ch <- minio.ObjectInfo{Key: opts.Prefix}
	close(ch)
	return ch
}

func TestCheckStorage(t *testing.T) {
	newService := func(client *mocks.Client) *integrity.Service {
		return integrity.NewService(client, "receiving", "us-east-1", zap.NewNop(), nil)
	}

	t.Run("Complete", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "receiving").Return(true, nil)
		client.On("ListObjects", mock.Anything, "receiving", mock.Anything).Return(fullListing)
		res := checkStorage(context.Background(), newService(client), false)
		assert.Equal(t, "ok", res.Status)
		assert.Equal(t, "receiving", res.Bucket)
	})

	t.Run("Bucket missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "receiving").Return(false, nil)
		res := checkStorage(context.Background(), newService(client), false)
		assert.Equal(t, "missing", res.Status)
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Folders missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "receiving").Return(true, nil)
		client.On("ListObjects", mock.Anything, "receiving", mock.Anything).Return(emptyListing())
		res := checkStorage(context.Background(), newService(client), false)
		assert.Equal(t, "missing", res.Status)
		assert.Equal(t, checks.RequiredFolders, res.Missing)
	})

	t.Run("Fix", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "receiving").Return(false, nil).Once()
		client.On("MakeBucket", mock.Anything, "receiving", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)
		client.On("BucketExists", mock.Anything, "receiving").Return(true, nil)
		client.On("ListObjects", mock.Anything, "receiving", mock.Anything).Return(emptyListing())
		client.On("PutObject", mock.Anything, "receiving", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

		res := checkStorage(context.Background(), newService(client), true)
		assert.Equal(t, "ok", res.Status)
		assert.True(t, res.Created)
		assert.Equal(t, checks.RequiredFolders, res.Fixed)
		client.AssertNumberOfCalls(t, "PutObject", 3)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "receiving").Return(false, assert.AnError)
		res := checkStorage(context.Background(), newService(client), false)
		assert.Equal(t, "error", res.Status)
	})
}

func TestCheckReport_OK(t *testing.T) {
	assert.True(t, checkReport{}.OK())
	assert.True(t, checkReport{Database: &databaseCheck{Status: "ok"}, Storage: &storageCheck{Status: "ok"}}.OK())
	assert.False(t, checkReport{Storage: &storageCheck{Status: "missing"}}.OK())
	assert.False(t, checkReport{Database: &databaseCheck{Status: "error"}}.OK())
}
