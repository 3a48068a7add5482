package services

import (
	"context"
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"strings"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type AttributeService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewAttributeService(logger *gecho.Logger, db *database.DB) *AttributeService {
	return &AttributeService{
		logger: logger,
		db:     db,
	}
}

// List returns every attribute, optionally narrowed to names containing
// the search term, case insensitively.
func (as *AttributeService) List(ctx context.Context, search string) ([]tables.Attribute, error) {
	q := database.Query[tables.Attribute](as.db).OrderBy("name", database.ASC)
	if search != "" {
		q.WhereRaw("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	attributes, err := q.All(ctx)
	if err != nil {
		as.logger.Error("Failed to list attributes", gecho.Field("error", err))
		return nil, err
	}
	return attributes, nil
}

func (as *AttributeService) Get(ctx context.Context, id uuid.UUID) (*tables.Attribute, error) {
	attribute, err := database.Query[tables.Attribute](as.db).Where("id", id).First(ctx)
	if err != nil {
		as.logger.Error("Failed to fetch attribute", gecho.Field("error", err), gecho.Field("attribute_id", id))
		return nil, err
	}
	if attribute == nil {
		return nil, fmt.Errorf("%w: attribute %s", lib.ErrNotFound, id)
	}
	return attribute, nil
}

func (as *AttributeService) Create(ctx context.Context, req *structs.AttributeWriteRequest) (*tables.Attribute, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", lib.ErrValidation)
	}

	attribute := &tables.Attribute{
		ID:   uuid.New(),
		Name: *req.Name,
	}

	created, err := database.Query[tables.Attribute](as.db).Insert(ctx, attribute)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: attribute %q already exists", lib.ErrConflict, *req.Name)
		}
		as.logger.Error("Failed to create attribute", gecho.Field("error", err), gecho.Field("name", *req.Name))
		return nil, err
	}

	return created, nil
}

func (as *AttributeService) Update(ctx context.Context, id uuid.UUID, req *structs.AttributeWriteRequest) (*tables.Attribute, error) {
	if _, err := as.Get(ctx, id); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", lib.ErrValidation)
		}
		_, err := database.Query[tables.Attribute](as.db).
			Where("id", id).
			Update(ctx, map[string]any{"name": *req.Name})
		if err != nil {
			if lib.IsUniqueViolation(err) {
				return nil, fmt.Errorf("%w: attribute %q already exists", lib.ErrConflict, *req.Name)
			}
			as.logger.Error("Failed to update attribute", gecho.Field("error", err), gecho.Field("attribute_id", id))
			return nil, err
		}
	}

	return as.Get(ctx, id)
}

// Delete removes an attribute and, through the schema cascade, every
// attribute item that references it on any product.
func (as *AttributeService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Attribute](as.db).Where("id", id).Delete(ctx)
	if err != nil {
		as.logger.Error("Failed to delete attribute", gecho.Field("error", err), gecho.Field("attribute_id", id))
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: attribute %s", lib.ErrNotFound, id)
	}
	return nil
}

// BulkCreate resolves every requested name to an attribute row, creating
// the missing ones inside one transaction, so a failure midway persists
// nothing. The result keeps the order and multiplicity of the input, so
// duplicate names resolve to the same row twice.
func (as *AttributeService) BulkCreate(ctx context.Context, req *structs.BulkCreateAttributesRequest) ([]tables.Attribute, error) {
	if len(req.Names) == 0 {
		return nil, fmt.Errorf("%w: names is required", lib.ErrValidation)
	}
	for _, name := range req.Names {
		if name == "" {
			return nil, fmt.Errorf("%w: names cannot contain empty strings", lib.ErrValidation)
		}
	}

	results := make([]tables.Attribute, 0, len(req.Names))
	err := database.Transaction(as.db, ctx, func(tx bun.Tx) error {
		for _, name := range req.Names {
			attribute, err := getOrCreateAttribute(ctx, tx, name)
			if err != nil {
				as.logger.Error("Failed to resolve attribute name", gecho.Field("error", err), gecho.Field("name", name))
				return err
			}
			results = append(results, *attribute)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// SearchOrCreate finds attributes whose name contains the query, case
// insensitively. With create set, it instead resolves the query to a
// single attribute, creating it when absent.
func (as *AttributeService) SearchOrCreate(ctx context.Context, query string, create bool) ([]tables.Attribute, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", lib.ErrValidation)
	}

	if create {
		attribute, err := getOrCreateAttribute(ctx, as.db.DB, query)
		if err != nil {
			as.logger.Error("Failed to resolve attribute name", gecho.Field("error", err), gecho.Field("name", query))
			return nil, err
		}
		return []tables.Attribute{*attribute}, nil
	}

	pattern := "%" + strings.ToLower(query) + "%"
	attributes, err := database.Query[tables.Attribute](as.db).
		WhereRaw("LOWER(name) LIKE ?", pattern).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		as.logger.Error("Failed to search attributes", gecho.Field("error", err), gecho.Field("query", query))
		return nil, err
	}
	return attributes, nil
}

// getOrCreateAttribute fetches the attribute with the given name,
// inserting it first when missing. The insert tolerates a concurrent
// writer creating the same name: ON CONFLICT DO NOTHING leaves the
// surrounding transaction intact and the follow-up fetch returns
// whichever row won.
func getOrCreateAttribute(ctx context.Context, idb bun.IDB, name string) (*tables.Attribute, error) {
	existing, err := database.QueryOn[tables.Attribute](idb).Where("name", name).First(ctx)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	attribute := &tables.Attribute{
		ID:   uuid.New(),
		Name: name,
	}
	if _, err := database.QueryOn[tables.Attribute](idb).OnConflictDoNothing("name").Insert(ctx, attribute); err != nil {
		return nil, err
	}

	existing, err = database.QueryOn[tables.Attribute](idb).Where("name", name).First(ctx)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("attribute %q missing after insert", name)
	}
	return existing, nil
}

// resolveAttribute turns one attribute input into a concrete attribute
// row. Exactly one of the id and the new-name reference must be set.
func resolveAttribute(ctx context.Context, idb bun.IDB, input *structs.AttributeItemInput) (*tables.Attribute, error) {
	hasID := input.AttributeID != nil
	hasName := input.AttributeNameNew != ""

	switch {
	case hasID && hasName:
		return nil, fmt.Errorf("%w: provide either attribute_id or attribute_name_new, not both", lib.ErrValidation)
	case !hasID && !hasName:
		return nil, fmt.Errorf("%w: provide attribute_id or attribute_name_new", lib.ErrValidation)
	case hasID:
		attribute, err := database.QueryOn[tables.Attribute](idb).Where("id", *input.AttributeID).First(ctx)
		if err != nil {
			return nil, err
		}
		if attribute == nil {
			return nil, fmt.Errorf("%w: attribute %s does not exist", lib.ErrValidation, *input.AttributeID)
		}
		return attribute, nil
	default:
		return getOrCreateAttribute(ctx, idb, input.AttributeNameNew)
	}
}
