package admin

import (
	"ravvio_server/api/middleware"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AdminRoutesManager struct {
	logger *gecho.Logger
	cfg    *structs.Config
	mw     *middleware.Middleware
}

func NewAdminRoutesManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AdminRoutesManager {
	return &AdminRoutesManager{
		logger: logger,
		cfg:    cfg,
		mw:     mw,
	}
}

func (ar *AdminRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(ar.mw.AdminAuthMiddleware)
		r.Get("/site", ar.GetSite)
	})
}
