package products

import (
	"net/http"
	"ravvio_server/handling"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateProduct handles POST /products. The body is JSON, or multipart
// when it carries image uploads.
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, err := handling.ParseProductWriteRequest(r)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	product, err := prm.productService.Create(r.Context(), req)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateProduct handles PUT and PATCH on /products/{id}. Both apply the
// same partial update; absent fields stay untouched.
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	req, err := handling.ParseProductWriteRequest(r)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	product, err := prm.productService.Update(r.Context(), id, req)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(product), gecho.Send())
}

func (prm *ProductRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	if err := prm.productService.Delete(r.Context(), id); err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Product deleted"), gecho.Send())
}
