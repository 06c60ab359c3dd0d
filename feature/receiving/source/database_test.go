package source

import (
	"context"
	"testing"
	"time"

	"receiving-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
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

func TestDBSource_LoadLines(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	src := NewDBSource(db)

	rows := sqlmock.NewRows([]string{"id", "document_id", "line_ref", "item_code", "barcode", "item_name", "size", "packing_group", "expected_qty"}).
		AddRow(1, "PO-1", "10", "SKU-1", "", "Tee", "M", nil, 5).
		AddRow(2, "PO-1", "", "SKU-2", "0222", "Cap", "S", "BOX-A", nil)
	sqlMock.ExpectQuery("SELECT \\* FROM `manifest_lines` WHERE document_id = \\? ORDER BY id").
		WithArgs("PO-1").
		WillReturnRows(rows)

	raw, err := src.LoadLines(context.Background(), " PO-1 ")
	require.NoError(t, err)
	require.Len(t, raw, 2)

	assert.Equal(t, "10", raw[0].Key)
	assert.Equal(t, "SKU-1", raw[0].Code)
	assert.Equal(t, 5, *raw[0].Expected)
	assert.Nil(t, raw[0].Group)

	assert.Equal(t, "2", raw[1].Key)
	assert.Equal(t, "0222", raw[1].Code)
	assert.Equal(t, "BOX-A", *raw[1].Group)
	assert.Nil(t, raw[1].Expected, "A NULL quantity is left for the engine to reject")

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBSource_LoadLines_NotFound(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	src := NewDBSource(db)

	sqlMock.ExpectQuery("SELECT \\* FROM `manifest_lines`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := src.LoadLines(context.Background(), "PO-404")
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	sqlMock.ExpectQuery("SELECT \\* FROM `manifest_lines`").WillReturnError(assert.AnError)
	_, err = src.LoadLines(context.Background(), "PO-1")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrDocumentNotFound)
}

func TestDBSource_ResolvePack(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	src := NewDBSource(db)

	rows := sqlmock.NewRows([]string{"id", "pack_label", "item_code", "barcode", "size", "packing_group", "quantity"}).
		AddRow(1, "PK-1", "SKU-1", "", "M", nil, 3).
		AddRow(2, "PK-1", "SKU-2", "", "S", nil, 1)
	sqlMock.ExpectQuery("SELECT \\* FROM `pack_contents` WHERE pack_label = \\? ORDER BY id").
		WithArgs("PK-1").
		WillReturnRows(rows)

	contents, err := src.ResolvePack(context.Background(), " pk-1")
	require.NoError(t, err)
	assert.Equal(t, []reconcile.Tuple{
		{Code: "SKU-1", Size: "M", Quantity: 3},
		{Code: "SKU-2", Size: "S", Quantity: 1},
	}, contents)

	sqlMock.ExpectQuery("SELECT \\* FROM `pack_contents`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = src.ResolvePack(context.Background(), "PK-9")
	var unresolved *reconcile.UnresolvedPackError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "PK-9", unresolved.Label)

	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func testSnapshot() reconcile.Snapshot {
	return reconcile.Snapshot{
		DocumentID: "PO-1",
		Totals:     reconcile.Totals{LineCount: 2, TotalExpected: 4, TotalObserved: 4, MatchedCount: 2},
		Lines: []reconcile.Line{
			{Key: "L2", Code: "SKU-2", Size: "S", Expected: 1, Observed: 1},
			{Key: "L1", Code: "SKU-1", Size: "M", Expected: 3, Observed: 3},
		},
		Packs: []string{"PK-1"},
	}
}

func TestDBSource_Finalize(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	src := NewDBSource(db)
	src.now = func() time.Time { return time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC) }

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `receipt_lines` WHERE receipt_id IN \\(SELECT `id` FROM `receipts` WHERE document_id = \\?\\)").
		WithArgs("PO-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("DELETE FROM `receipts` WHERE document_id = \\?").
		WithArgs("PO-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("INSERT INTO `receipts`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	sqlMock.ExpectExec("INSERT INTO `receipt_lines`").
		WillReturnResult(sqlmock.NewResult(1, 2))
	sqlMock.ExpectCommit()

	err := src.Finalize(context.Background(), testSnapshot())
	require.NoError(t, err)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestDBSource_Finalize_RollsBack(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	src := NewDBSource(db)

	sqlMock.ExpectBegin()
	sqlMock.ExpectExec("DELETE FROM `receipt_lines`").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("DELETE FROM `receipts`").WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectExec("INSERT INTO `receipts`").WillReturnError(assert.AnError)
	sqlMock.ExpectRollback()

	err := src.Finalize(context.Background(), testSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to insert receipt")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}
