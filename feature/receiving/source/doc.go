// Package source provides the manifest, pack and receipt backends of the receiving feature.
//
// Two backends are available:
//   - DBSource reads the 'manifest_lines' and 'pack_contents' tables and writes
//     'receipts' and 'receipt_lines' in a single transaction.
//   - StorageSource reads JSON documents from the bucket:
//     manifests/<document>.json and packs/<LABEL>.json.
//
// Archiver uploads every finalized snapshot to receipts/<document>.json.
//
// Usage:
//
//	set, err := source.Select(cfg.Server.Source, db, client, cfg.Storage.Bucket)
//	raw, err := set.Manifests.LoadLines(ctx, "PO-1001")
package source
