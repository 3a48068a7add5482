package products

import (
	"net/http"
	"ravvio_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// ListProducts handles GET /products with filtering, pagination and sorting
func (prm *ProductRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseProductListOptions(r)
	if err != nil {
		prm.logger.Warn("Invalid query parameters", gecho.Field("error", err))
		gecho.BadRequest(w,
			gecho.WithMessage("Invalid query parameters"),
			gecho.Send(),
		)
		return
	}

	result, err := prm.productService.List(r.Context(), opts)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products":   result.Data,
			"pagination": result.Pagination,
		}),
		gecho.Send(),
	)
}

// GetProduct handles GET /products/{id}, returning the detail shape with
// nested attribute items and ordered images.
func (prm *ProductRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	product, err := prm.productService.Get(r.Context(), id)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}
