package collection

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	ledger  *Ledger
	handler *Handler
}

// NewFeature creates the collection feature.
func NewFeature(ledger *Ledger) *Feature {
	return &Feature{ledger: ledger, handler: NewHandler(ledger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "collection"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.ledger != nil
}

// Load migrates the collection table and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.ledger.Migrate(); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}
