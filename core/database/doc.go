// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL connections (or SQLite for local runs) from the
// application's configuration.
//
// # Connect
//
// Connect opens the configured driver, tunes the connection pool and pings the server
// within the configured timeout.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns report the columns of a table. The receiving
// sources use them to verify that the manifest, pack and receipt tables carry the
// columns they read and write before serving traffic.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "manifest_lines", []string{"document_id", "expected_qty"})
package database
