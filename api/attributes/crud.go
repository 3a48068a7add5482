package attributes

import (
	"net/http"
	"ravvio_server/handling"
	"ravvio_server/lib"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (arm *AttributeRoutesManager) ListAttributes(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	attributes, err := arm.attributeService.List(r.Context(), search)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"attributes": attributes}),
		gecho.Send(),
	)
}

func (arm *AttributeRoutesManager) GetAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid attribute id"), gecho.Send())
		return
	}

	attribute, err := arm.attributeService.Get(r.Context(), id)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(attribute), gecho.Send())
}

func (arm *AttributeRoutesManager) CreateAttribute(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.AttributeWriteRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	attribute, err := arm.attributeService.Create(r.Context(), body)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Attribute created"),
		gecho.WithData(attribute),
		gecho.Send(),
	)
}

func (arm *AttributeRoutesManager) UpdateAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid attribute id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AttributeWriteRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	attribute, err := arm.attributeService.Update(r.Context(), id, body)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(attribute), gecho.Send())
}

func (arm *AttributeRoutesManager) DeleteAttribute(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid attribute id"), gecho.Send())
		return
	}

	if err := arm.attributeService.Delete(r.Context(), id); err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Attribute deleted"), gecho.Send())
}
