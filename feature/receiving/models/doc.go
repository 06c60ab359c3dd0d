// Package models defines the GORM models of the receiving tables.
//
// Manifest lines and pack contents are read by the database source; receipts and
// receipt lines are written when a document is finalized. Each model converts to or
// from the core/reconcile types so the engine never sees database rows.
package models
