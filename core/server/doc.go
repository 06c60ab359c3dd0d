// Package server holds the HTTP server configuration and constants.
//
// While the main application entry point handles the server startup, this package
// defines the configuration structures and valid values for server settings,
// such as the supported manifest sources.
//
// # Configuration
//
// The Config struct defines the HTTP port, API key, and the source backend
// (database or storage) that manifests and pack contents are loaded from.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the receiving feature to pick its collaborators.
package server
