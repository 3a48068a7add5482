package categories

import (
	"net/http"
	"ravvio_server/handling"
	"ravvio_server/lib"
	"ravvio_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (crm *CategoryRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.categoryService.List(r.Context())
	if err != nil {
		handling.RespondServiceError(err, crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"categories": categories}),
		gecho.Send(),
	)
}

func (crm *CategoryRoutesManager) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	category, err := crm.categoryService.Get(r.Context(), id)
	if err != nil {
		handling.RespondServiceError(err, crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(category), gecho.Send())
}

func (crm *CategoryRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CategoryWriteRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	category, err := crm.categoryService.Create(r.Context(), body)
	if err != nil {
		handling.RespondServiceError(err, crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}

func (crm *CategoryRoutesManager) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.CategoryWriteRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	category, err := crm.categoryService.Update(r.Context(), id, body)
	if err != nil {
		handling.RespondServiceError(err, crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(category), gecho.Send())
}

func (crm *CategoryRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category id"), gecho.Send())
		return
	}

	if err := crm.categoryService.Delete(r.Context(), id); err != nil {
		handling.RespondServiceError(err, crm.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Category deleted"), gecho.Send())
}
