package services

import (
	"context"
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/storage"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ProductListOptions contains the supported list filters.
type ProductListOptions struct {
	Page          int
	PageSize      int
	CategoryID    *uuid.UUID
	SearchTerm    string
	SortBy        string // "name" or "price"
	SortDirection string // "asc" or "desc"
}

type ProductService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	db     *database.DB
	store  storage.ObjectStore
}

func NewProductService(logger *gecho.Logger, cfg *structs.Config, db *database.DB, store storage.ObjectStore) *ProductService {
	return &ProductService{
		logger: logger,
		cfg:    cfg,
		db:     db,
		store:  store,
	}
}

// List returns a page of product summaries. Summaries carry the category
// but not the attribute items or images; those load on the detail fetch.
func (ps *ProductService) List(ctx context.Context, opts *ProductListOptions) (*database.PaginationResult[tables.Product], error) {
	if opts == nil {
		opts = &ProductListOptions{}
	}

	q := database.Query[tables.Product](ps.db).Relation("Category")

	if opts.CategoryID != nil {
		q.Where("p.category_id", *opts.CategoryID)
	}
	if opts.SearchTerm != "" {
		pattern := "%" + strings.ToLower(opts.SearchTerm) + "%"
		q.WhereRaw("(LOWER(p.name) LIKE ? OR LOWER(p.description) LIKE ?)", pattern, pattern)
	}

	switch opts.SortBy {
	case "":
		q.OrderBy("p.created_at", database.DESC)
	case "name", "price", "created_at":
		direction := database.ASC
		if strings.EqualFold(opts.SortDirection, "desc") {
			direction = database.DESC
		}
		q.OrderBy("p."+opts.SortBy, direction)
	default:
		return nil, fmt.Errorf("%w: unsupported sort_by %q", lib.ErrValidation, opts.SortBy)
	}

	result, err := database.Paginate(q, ctx, opts.Page, opts.PageSize)
	if err != nil {
		ps.logger.Error("Failed to list products", gecho.Field("error", err))
		return nil, err
	}
	return result, nil
}

// Get returns one product with its category, attribute items (with their
// attribute rows) and gallery images in display order.
func (ps *ProductService) Get(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).
		Where("p.id", id).
		Relation("Category").
		RelationWith("Attributes", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Relation("Attribute")
		}).
		RelationWith("Images", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("display_order ASC", "created_at ASC")
		}).
		First(ctx)
	if err != nil {
		ps.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("product_id", id))
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}
	for i := range product.Images {
		product.Images[i].URL = ps.imageURL(product.Images[i].BlobRef)
	}
	return product, nil
}

// imageURL resolves a blob ref to the URL it is served from.
func (ps *ProductService) imageURL(ref string) string {
	base := strings.TrimSuffix(ps.cfg.Storage.PublicURL, "/")
	if base == "" {
		return ref
	}
	return base + "/" + ref
}

// Create inserts a product together with its attribute items and uploaded
// images. Attribute inputs are validated before anything is written; blob
// uploads that make it to the store before a failed transaction are
// removed again.
func (ps *ProductService) Create(ctx context.Context, req *structs.ProductWriteRequest) (*tables.Product, error) {
	if req.Name == nil || *req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", lib.ErrValidation)
	}
	if req.CategoryID == nil {
		return nil, fmt.Errorf("%w: category_id is required", lib.ErrValidation)
	}
	if err := validateAttributeInputs(req.ProductAttributes); err != nil {
		return nil, err
	}

	category, err := database.Query[tables.Category](ps.db).Where("id", *req.CategoryID).First(ctx)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %s does not exist", lib.ErrValidation, *req.CategoryID)
	}

	blobRefs, err := ps.storeUploads(ctx, req.UploadedImages)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	product := &tables.Product{
		ID:         uuid.New(),
		Name:       *req.Name,
		Price:      req.Price,
		CategoryID: *req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Description != nil {
		product.Description = *req.Description
	}

	err = database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if _, err := database.QueryTx[tables.Product](tx).Insert(ctx, product); err != nil {
			return err
		}
		if err := createAttributeItems(ctx, tx, product.ID, req.ProductAttributes); err != nil {
			return err
		}
		return appendImages(ctx, tx, product.ID, blobRefs, 0)
	})
	if err != nil {
		ps.deleteBlobs(ctx, blobRefs)
		ps.logger.Error("Failed to create product", gecho.Field("error", err), gecho.Field("name", *req.Name))
		return nil, err
	}

	ps.logger.Info("Product created",
		gecho.Field("product_id", product.ID),
		gecho.Field("name", product.Name),
		gecho.Field("images", len(blobRefs)),
	)
	return ps.Get(ctx, product.ID)
}

// Update applies a partial update. Scalar fields change only when present
// in the payload. A non-empty attribute list replaces every existing
// attribute item; a non-empty upload list appends images after the
// current gallery. Empty lists leave both untouched.
func (ps *ProductService) Update(ctx context.Context, id uuid.UUID, req *structs.ProductWriteRequest) (*tables.Product, error) {
	existing, err := database.Query[tables.Product](ps.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}
	if err := validateAttributeInputs(req.ProductAttributes); err != nil {
		return nil, err
	}

	columns := map[string]any{"updated_at": time.Now().UTC()}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", lib.ErrValidation)
		}
		columns["name"] = *req.Name
	}
	if req.Description != nil {
		columns["description"] = *req.Description
	}
	if req.Price != nil {
		columns["price"] = *req.Price
	}
	if req.CategoryID != nil {
		category, err := database.Query[tables.Category](ps.db).Where("id", *req.CategoryID).First(ctx)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category %s does not exist", lib.ErrValidation, *req.CategoryID)
		}
		columns["category_id"] = *req.CategoryID
	}

	blobRefs, err := ps.storeUploads(ctx, req.UploadedImages)
	if err != nil {
		return nil, err
	}

	err = database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if _, err := database.QueryTx[tables.Product](tx).Where("id", id).Update(ctx, columns); err != nil {
			return err
		}

		if len(req.ProductAttributes) > 0 {
			if _, err := database.QueryTx[tables.AttributeItem](tx).Where("product_id", id).Delete(ctx); err != nil {
				return err
			}
			if err := createAttributeItems(ctx, tx, id, req.ProductAttributes); err != nil {
				return err
			}
		}

		if len(blobRefs) > 0 {
			count, err := database.QueryTx[tables.Image](tx).Where("product_id", id).Count(ctx)
			if err != nil {
				return err
			}
			return appendImages(ctx, tx, id, blobRefs, count)
		}
		return nil
	})
	if err != nil {
		ps.deleteBlobs(ctx, blobRefs)
		ps.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("product_id", id))
		return nil, err
	}

	return ps.Get(ctx, id)
}

// Delete removes a product, its attribute items and gallery rows through
// the schema cascades, and the stored image blobs best effort.
func (ps *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	images, err := database.Query[tables.Image](ps.db).Where("product_id", id).All(ctx)
	if err != nil {
		return err
	}

	affected, err := database.Query[tables.Product](ps.db).Where("id", id).Delete(ctx)
	if err != nil {
		ps.logger.Error("Failed to delete product", gecho.Field("error", err), gecho.Field("product_id", id))
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}

	refs := make([]string, 0, len(images))
	for _, image := range images {
		refs = append(refs, image.BlobRef)
	}
	ps.deleteBlobs(ctx, refs)

	ps.logger.Info("Product deleted", gecho.Field("product_id", id), gecho.Field("images", len(refs)))
	return nil
}

// storeUploads writes every upload to the blob store and returns their
// refs in input order.
func (ps *ProductService) storeUploads(ctx context.Context, uploads []structs.ImageUpload) ([]string, error) {
	refs := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		name := uuid.New().String() + "_" + storage.SanitizeFilename(upload.Filename)
		info, err := ps.store.Put(ctx, name, upload.Data, upload.ContentType)
		if err != nil {
			ps.deleteBlobs(ctx, refs)
			ps.logger.Error("Failed to store image upload", gecho.Field("error", err), gecho.Field("filename", upload.Filename))
			return nil, err
		}
		refs = append(refs, info.Name)
	}
	return refs, nil
}

// deleteBlobs removes stored blobs, logging failures instead of
// propagating them. Used on the rollback and delete paths.
func (ps *ProductService) deleteBlobs(ctx context.Context, refs []string) {
	for _, ref := range refs {
		if err := ps.store.Delete(ctx, ref); err != nil {
			ps.logger.Warn("Failed to delete stored image", gecho.Field("error", err), gecho.Field("ref", ref))
		}
	}
}

// validateAttributeInputs rejects malformed attribute references before
// any database or blob write happens.
func validateAttributeInputs(inputs []structs.AttributeItemInput) error {
	for i := range inputs {
		hasID := inputs[i].AttributeID != nil
		hasName := inputs[i].AttributeNameNew != ""
		if hasID && hasName {
			return fmt.Errorf("%w: attribute %d: provide either attribute_id or attribute_name_new, not both", lib.ErrValidation, i)
		}
		if !hasID && !hasName {
			return fmt.Errorf("%w: attribute %d: provide attribute_id or attribute_name_new", lib.ErrValidation, i)
		}
	}
	return nil
}

func createAttributeItems(ctx context.Context, tx bun.Tx, productID uuid.UUID, inputs []structs.AttributeItemInput) error {
	for i := range inputs {
		attribute, err := resolveAttribute(ctx, tx, &inputs[i])
		if err != nil {
			return err
		}
		item := &tables.AttributeItem{
			ID:          uuid.New(),
			ProductID:   productID,
			AttributeID: attribute.ID,
			Value:       inputs[i].Value,
		}
		if _, err := database.QueryTx[tables.AttributeItem](tx).Insert(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// appendImages inserts gallery rows for the given refs starting at the
// given display order.
func appendImages(ctx context.Context, tx bun.Tx, productID uuid.UUID, refs []string, startOrder int) error {
	now := time.Now().UTC()
	for i, ref := range refs {
		image := &tables.Image{
			ID:           uuid.New(),
			ProductID:    productID,
			BlobRef:      ref,
			DisplayOrder: startOrder + i,
			CreatedAt:    now.Add(time.Duration(i) * time.Microsecond),
		}
		if _, err := database.QueryTx[tables.Image](tx).Insert(ctx, image); err != nil {
			return err
		}
	}
	return nil
}
