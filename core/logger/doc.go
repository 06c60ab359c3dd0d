// Package logger builds the zap logger shared by the server, the scan terminal and the checks.
//
// Level "debug" starts from zap's development config, anything else from the production
// config. Format picks the encoder: "json" for shipping to a collector, "console" for a
// person watching a scan station.
//
// Request scoped logs carry the ray_id set by the rayid middleware:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Scan rejected", zap.String("document", doc), zap.Error(err))
//
// The reconciliation engine itself never logs. Its callers do.
package logger
