package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// Source selects where manifests and pack contents are read from (database, storage).
	Source string `mapstructure:"source" default:"database"`
}

const (
	SourceDatabase = "database"
	SourceStorage  = "storage"
)

// IsValidSource checks if the configured source is valid.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceDatabase, SourceStorage:
		return true
	default:
		return false
	}
}
