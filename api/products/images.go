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

// AddImages handles POST /products/{id}/add_images, appending multipart
// "images" files after the current gallery.
func (prm *ProductRoutesManager) AddImages(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	uploads, err := handling.ParseImageUploads(r)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	product, err := prm.productService.Update(r.Context(), id, &structs.ProductWriteRequest{
		UploadedImages: uploads,
	})
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Images added"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// UpdateImageOrder handles POST /products/{id}/update_image_order.
func (prm *ProductRoutesManager) UpdateImageOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateImageOrderRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	product, err := prm.productService.UpdateImageOrder(r.Context(), id, body)
	if err != nil {
		handling.RespondServiceError(err, prm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Image order updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}

// ServeImage streams a stored blob back to the client.
func (prm *ProductRoutesManager) ServeImage(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")
	if ref == "" {
		gecho.BadRequest(w, gecho.WithMessage("Missing image ref"), gecho.Send())
		return
	}

	data, info, err := prm.productService.GetImage(r.Context(), ref)
	if err != nil {
		gecho.NotFound(w, gecho.WithMessage("Image not found"), gecho.Send())
		return
	}

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
