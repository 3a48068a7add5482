package api

import (
	"ravvio_server/api/admin"
	"ravvio_server/api/attributes"
	"ravvio_server/api/auth"
	"ravvio_server/api/categories"
	"ravvio_server/api/health"
	"ravvio_server/api/middleware"
	"ravvio_server/api/products"
	"ravvio_server/services"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	categoryRoutes  *categories.CategoryRoutesManager
	attributeRoutes *attributes.AttributeRoutesManager
	productRoutes   *products.ProductRoutesManager
	healthRoutes    *health.HealthRoutesManager
	authRoutes      *auth.AuthRoutesManager
	adminRoutes     *admin.AdminRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	cfg *structs.Config,
	sm *services.ServiceManager,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		categoryRoutes:  categories.NewCategoryRoutesManager(logger, sm.CategoryService, mw),
		attributeRoutes: attributes.NewAttributeRoutesManager(logger, sm.AttributeService, mw),
		productRoutes:   products.NewProductRoutesManager(logger, sm.ProductService, mw),
		healthRoutes:    health.NewHealthRoutesManager(sm.HealthService),
		authRoutes:      auth.NewAuthRoutesManager(logger, sm.AuthService, mw),
		adminRoutes:     admin.NewAdminRoutesManager(logger, cfg, mw),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.categoryRoutes.RegisterRoutes(r)
	rm.attributeRoutes.RegisterRoutes(r)
	rm.productRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.adminRoutes.RegisterRoutes(r)
}
