// Package loader registers the HTTP features of the receiving manager.
//
// A feature is anything that can mount routes:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The start command registers 'receiving' (scan sessions) and 'integrity' (backend
// checks) with a Manager and calls LoadAll once middleware is in place. A feature whose
// backends are not configured reports IsEnabled() == false and is skipped with a log line
// instead of failing startup.
package loader
