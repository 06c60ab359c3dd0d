// Package integrity checks that the receiving backends are ready for use.
//
// Unlike the 'receiving' package which reconciles scans against manifests,
// this package validates the infrastructure the sources and finalizers rely on.
//
// # Checks Provided
//
//   - Structure: Checks that the bucket exists and holds the manifests/, packs/ and receipts/ folders.
//   - Schema: Validates that the connected database has every column the receiving models map.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/schema : Runs schema check (supports ?migrate=true).
package integrity
