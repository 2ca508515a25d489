// Package loader registers the HTTP features of mana-vault on the fiber app.
//
// Each feature (search, catalog, index, collection, integrity) implements Feature:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager keeps features in registration order. LoadAll skips disabled features
// and stops at the first one that fails to load.
package loader
