// Package loader registers features on the HTTP router.
//
// A feature owns a route group (products, integrity) and implements
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// Manager.LoadAll loads features in registration order, logs disabled ones and
// stops at the first feature that fails to load.
package loader
