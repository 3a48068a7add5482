package products

import (
	"net/http"
	"ravvio_server/handling"
	"ravvio_server/lib"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UpdateAttributes handles POST /products/{id}/update_attributes.
func (prm *ProductRoutesManager) UpdateAttributes(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateAttributesRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	product, err := prm.productService.BulkUpdateAttributes(r.Context(), id, body)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Attributes updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
