package attributes

import (
	"ravvio_server/api/middleware"
	"ravvio_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AttributeRoutesManager struct {
	logger           *gecho.Logger
	attributeService *services.AttributeService
	mw               *middleware.Middleware
}

func NewAttributeRoutesManager(
	logger *gecho.Logger,
	attributeService *services.AttributeService,
	mw *middleware.Middleware,
) *AttributeRoutesManager {
	return &AttributeRoutesManager{
		logger:           logger,
		attributeService: attributeService,
		mw:               mw,
	}
}

func (arm *AttributeRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/attributes", func(r chi.Router) {
		r.Get("/", arm.ListAttributes)
		r.Get("/search_or_create", arm.SearchOrCreate)
		r.Get("/{id}", arm.GetAttribute)

		r.Group(func(r chi.Router) {
			r.Use(arm.mw.AdminAuthMiddleware)
			r.Post("/", arm.CreateAttribute)
			r.Post("/bulk_create", arm.BulkCreateAttributes)
			r.Put("/{id}", arm.UpdateAttribute)
			r.Patch("/{id}", arm.UpdateAttribute)
			r.Delete("/{id}", arm.DeleteAttribute)
		})
	})
}
