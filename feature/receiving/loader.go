package receiving

import (
	"receiving-manager/core/reconcile"
	"receiving-manager/feature/receiving/source"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new Receiving feature.
func NewFeature(sources source.Set, opts reconcile.Options, logger *zap.Logger) *Feature {
	svc := NewService(sources, opts, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "receiving"
}

// IsEnabled reports whether the feature has the sources it needs.
func (f *Feature) IsEnabled() bool {
	return f.service.sources.Manifests != nil && f.service.sources.Packs != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
