// Package config provides configuration management for the Receiving Manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (via godotenv). Defaults live in `default` struct tags next to
// each setting.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, manifest source)
//   - Database: MySQL (or SQLite) connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Reconcile: rescan policy, strict finalize and pack cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
