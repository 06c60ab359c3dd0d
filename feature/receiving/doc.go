// Package receiving implements inbound receiving sessions on top of core/reconcile.
//
// A session is opened per document: its manifest is loaded from the configured
// source, pack labels are scanned and resolved to their contents, and once the
// aggregate discrepancy reaches zero the document can be finalized. Finalizing
// writes the receipt to the database and archives it to object storage.
//
// HTTP routes:
//
//	GET    /receiving                     open sessions
//	POST   /receiving/{document}          open or reload
//	GET    /receiving/{document}          summary
//	POST   /receiving/{document}/scans    {"label": "PK-1"}
//	POST   /receiving/{document}/reset
//	POST   /receiving/{document}/finalize {"dry_run": true}
//	GET    /receiving/{document}/report   XLSX report
//	DELETE /receiving/{document}
package receiving
