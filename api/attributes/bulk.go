package attributes

import (
	"net/http"
	"ravvio_server/handling"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"strconv"

	"github.com/MonkyMars/gecho"
)

// BulkCreateAttributes resolves a list of names to attribute rows,
// creating the missing ones. Duplicate names in the request resolve to
// the same row.
func (arm *AttributeRoutesManager) BulkCreateAttributes(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BulkCreateAttributesRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	attributes, err := arm.attributeService.BulkCreate(r.Context(), body)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"attributes": attributes}),
		gecho.Send(),
	)
}

// SearchOrCreate handles GET /attributes/search_or_create. The name
// query is required; with create=true the name resolves to a single
// attribute, created when absent.
func (arm *AttributeRoutesManager) SearchOrCreate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("name")

	create := false
	if raw := query.Get("create"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			gecho.BadRequest(w, gecho.WithMessage("Invalid create flag"), gecho.Send())
			return
		}
		create = parsed
	}

	attributes, err := arm.attributeService.SearchOrCreate(r.Context(), name, create)
	if err != nil {
		handling.RespondServiceError(err, arm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"attributes": attributes}),
		gecho.Send(),
	)
}
