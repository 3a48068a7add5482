package products

import (
	"ravvio_server/api/middleware"
	"ravvio_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ProductRoutesManager struct {
	logger         *gecho.Logger
	productService *services.ProductService
	mw             *middleware.Middleware
}

func NewProductRoutesManager(
	logger *gecho.Logger,
	productService *services.ProductService,
	mw *middleware.Middleware,
) *ProductRoutesManager {
	return &ProductRoutesManager{
		logger:         logger,
		productService: productService,
		mw:             mw,
	}
}

func (prm *ProductRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", prm.ListProducts)
		r.Get("/{id}", prm.GetProduct)

		r.Group(func(r chi.Router) {
			r.Use(prm.mw.AdminAuthMiddleware)
			r.Post("/", prm.CreateProduct)
			r.Put("/{id}", prm.UpdateProduct)
			r.Patch("/{id}", prm.UpdateProduct)
			r.Delete("/{id}", prm.DeleteProduct)

			r.Post("/{id}/add_images", prm.AddImages)
			r.Post("/{id}/update_image_order", prm.UpdateImageOrder)
			r.Post("/{id}/update_attributes", prm.UpdateAttributes)
		})
	})

	// Stored image payloads, addressed by their blob ref.
	r.Get("/media/product_images/{ref}", prm.ServeImage)
}
