package categories

import (
	"ravvio_server/api/middleware"
	"ravvio_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CategoryRoutesManager struct {
	logger          *gecho.Logger
	categoryService *services.CategoryService
	mw              *middleware.Middleware
}

func NewCategoryRoutesManager(
	logger *gecho.Logger,
	categoryService *services.CategoryService,
	mw *middleware.Middleware,
) *CategoryRoutesManager {
	return &CategoryRoutesManager{
		logger:          logger,
		categoryService: categoryService,
		mw:              mw,
	}
}

func (crm *CategoryRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/categories", func(r chi.Router) {
		r.Get("/", crm.ListCategories)
		r.Get("/{id}", crm.GetCategory)

		r.Group(func(r chi.Router) {
			r.Use(crm.mw.AdminAuthMiddleware)
			r.Post("/", crm.CreateCategory)
			r.Put("/{id}", crm.UpdateCategory)
			r.Patch("/{id}", crm.UpdateCategory)
			r.Delete("/{id}", crm.DeleteCategory)
		})
	})
}
