package checks

import (
	"testing"

	"receiving-manager/feature/receiving/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func columnRows(names ...string) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	for _, n := range names {
		rows.AddRow(n, "varchar(64)", "YES", "", nil, "")
	}
	return rows
}

func TestCheckSchema_NilDB(t *testing.T) {
	report, err := CheckSchema(nil, models.ManifestLine{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckSchema_Matched(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `pack_contents`").
		WillReturnRows(columnRows("id", "pack_label", "item_code", "barcode", "size", "packing_group", "quantity"))

	report, err := CheckSchema(db, models.PackContent{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Equal(t, "ok", report.Tables["pack_contents"].Status)
	assert.Empty(t, report.Missing())
}

func TestCheckSchema_MissingColumns(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery("SHOW COLUMNS FROM `receipts`").
		WillReturnRows(columnRows("id", "document_id", "line_count", "total_expected", "total_observed", "matched_count", "discrepancy", "finalized_at"))
	mock.ExpectQuery("SHOW COLUMNS FROM `receipt_lines`").
		WillReturnError(assert.AnError)

	report, err := CheckSchema(db, &models.Receipt{}, models.ReceiptLine{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, map[string][]string{"receipts": {"pack_count"}}, report.Missing())
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "receipt_lines")
}

func TestCheckSchema_InvalidModel(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := CheckSchema(db, "manifest_lines")
	assert.Error(t, err)

	type untabled struct {
		ID int `gorm:"column:id"`
	}
	_, err = CheckSchema(db, untabled{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestParseGormColumn(t *testing.T) {
	assert.Equal(t, "document_id", parseGormColumn("column:document_id;size:64;index:idx"))
	assert.Equal(t, "", parseGormColumn("foreignKey:ReceiptID"))
}
