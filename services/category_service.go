package services

import (
	"context"
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type CategoryService struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewCategoryService(logger *gecho.Logger, db *database.DB) *CategoryService {
	return &CategoryService{
		logger: logger,
		db:     db,
	}
}

func (cs *CategoryService) List(ctx context.Context) ([]tables.Category, error) {
	categories, err := database.Query[tables.Category](cs.db).
		OrderBy("name", database.ASC).
		All(ctx)
	if err != nil {
		cs.logger.Error("Failed to list categories", gecho.Field("error", err))
		return nil, err
	}
	return categories, nil
}

func (cs *CategoryService) Get(ctx context.Context, id uuid.UUID) (*tables.Category, error) {
	category, err := database.Query[tables.Category](cs.db).Where("id", id).First(ctx)
	if err != nil {
		cs.logger.Error("Failed to fetch category", gecho.Field("error", err), gecho.Field("category_id", id))
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %s", lib.ErrNotFound, id)
	}
	return category, nil
}

func (cs *CategoryService) Create(ctx context.Context, req *structs.CategoryWriteRequest) (*tables.Category, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", lib.ErrValidation)
	}

	category := &tables.Category{
		ID:        uuid.New(),
		Name:      *req.Name,
		CreatedAt: time.Now().UTC(),
	}

	created, err := database.Query[tables.Category](cs.db).Insert(ctx, category)
	if err != nil {
		if lib.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: category %q already exists", lib.ErrConflict, *req.Name)
		}
		cs.logger.Error("Failed to create category", gecho.Field("error", err), gecho.Field("name", *req.Name))
		return nil, err
	}

	cs.logger.Info("Category created", gecho.Field("category_id", created.ID), gecho.Field("name", created.Name))
	return created, nil
}

func (cs *CategoryService) Update(ctx context.Context, id uuid.UUID, req *structs.CategoryWriteRequest) (*tables.Category, error) {
	if _, err := cs.Get(ctx, id); err != nil {
		return nil, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", lib.ErrValidation)
		}
		_, err := database.Query[tables.Category](cs.db).
			Where("id", id).
			Update(ctx, map[string]any{"name": *req.Name})
		if err != nil {
			if lib.IsUniqueViolation(err) {
				return nil, fmt.Errorf("%w: category %q already exists", lib.ErrConflict, *req.Name)
			}
			cs.logger.Error("Failed to update category", gecho.Field("error", err), gecho.Field("category_id", id))
			return nil, err
		}
	}

	return cs.Get(ctx, id)
}

// Delete removes a category. Its products, and their attribute items and
// images, go with it via the schema's cascades.
func (cs *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := database.Query[tables.Category](cs.db).Where("id", id).Delete(ctx)
	if err != nil {
		cs.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("category_id", id))
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: category %s", lib.ErrNotFound, id)
	}

	cs.logger.Info("Category deleted", gecho.Field("category_id", id))
	return nil
}
