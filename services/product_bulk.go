package services

import (
	"context"
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/storage"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UpdateImageOrder rewrites the display order of the product's gallery.
// Entries whose id does not belong to the product are skipped silently;
// the returned product detail reflects the gallery as it stands afterwards.
func (ps *ProductService) UpdateImageOrder(ctx context.Context, productID uuid.UUID, req *structs.UpdateImageOrderRequest) (*tables.Product, error) {
	if _, err := ps.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	for i := range req.ImageOrders {
		if req.ImageOrders[i].Order == nil {
			return nil, fmt.Errorf("%w: image_orders[%d]: order is required", lib.ErrValidation, i)
		}
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		for i := range req.ImageOrders {
			entry := &req.ImageOrders[i]
			affected, err := database.QueryTx[tables.Image](tx).
				Where("id", entry.ID).
				Where("product_id", productID).
				Update(ctx, map[string]any{"display_order": *entry.Order})
			if err != nil {
				return err
			}
			if affected == 0 {
				ps.logger.Debug("Skipping image order entry for unknown image",
					gecho.Field("product_id", productID),
					gecho.Field("image_id", entry.ID),
				)
			}
		}
		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to update image order", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, err
	}

	return ps.Get(ctx, productID)
}

// BulkUpdateAttributes applies a batch of attribute item changes. Entries
// with an id update that item in place; entries without one create a new
// item. Ids that do not belong to the product are skipped silently. With
// clear_existing set, every current item is removed before the batch runs.
func (ps *ProductService) BulkUpdateAttributes(ctx context.Context, productID uuid.UUID, req *structs.UpdateAttributesRequest) (*tables.Product, error) {
	if _, err := ps.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if err := validateBulkAttributeOps(req.Attributes); err != nil {
		return nil, err
	}

	err := database.Transaction(ps.db, ctx, func(tx bun.Tx) error {
		if req.ClearExisting {
			if _, err := database.QueryTx[tables.AttributeItem](tx).Where("product_id", productID).Delete(ctx); err != nil {
				return err
			}
		}

		for i := range req.Attributes {
			op := &req.Attributes[i]
			if op.ID != nil {
				if err := ps.updateAttributeItem(ctx, tx, productID, op); err != nil {
					return err
				}
				continue
			}
			if err := createAttributeItemFromOp(ctx, tx, productID, op); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		ps.logger.Error("Failed to bulk update attributes", gecho.Field("error", err), gecho.Field("product_id", productID))
		return nil, err
	}

	return ps.Get(ctx, productID)
}

func (ps *ProductService) updateAttributeItem(ctx context.Context, tx bun.Tx, productID uuid.UUID, op *structs.BulkAttributeOp) error {
	item, err := database.QueryTx[tables.AttributeItem](tx).
		Where("id", *op.ID).
		Where("product_id", productID).
		First(ctx)
	if err != nil {
		return err
	}
	if item == nil {
		ps.logger.Debug("Skipping attribute update for unknown item",
			gecho.Field("product_id", productID),
			gecho.Field("item_id", *op.ID),
		)
		return nil
	}

	columns := map[string]any{}
	if op.Value != nil {
		columns["value"] = *op.Value
	}
	if op.AttributeID != nil || op.AttributeNameNew != "" {
		attribute, err := resolveAttribute(ctx, tx, &structs.AttributeItemInput{
			AttributeID:      op.AttributeID,
			AttributeNameNew: op.AttributeNameNew,
		})
		if err != nil {
			return err
		}
		columns["attribute_id"] = attribute.ID
	}
	if len(columns) == 0 {
		return nil
	}

	_, err = database.QueryTx[tables.AttributeItem](tx).Where("id", item.ID).Update(ctx, columns)
	return err
}

func createAttributeItemFromOp(ctx context.Context, tx bun.Tx, productID uuid.UUID, op *structs.BulkAttributeOp) error {
	attribute, err := resolveAttribute(ctx, tx, &structs.AttributeItemInput{
		AttributeID:      op.AttributeID,
		AttributeNameNew: op.AttributeNameNew,
	})
	if err != nil {
		return err
	}

	value := ""
	if op.Value != nil {
		value = *op.Value
	}
	item := &tables.AttributeItem{
		ID:          uuid.New(),
		ProductID:   productID,
		AttributeID: attribute.ID,
		Value:       value,
	}
	_, err = database.QueryTx[tables.AttributeItem](tx).Insert(ctx, item)
	return err
}

// validateBulkAttributeOps rejects malformed entries before any write.
// Updates may omit the attribute reference entirely; creations must carry
// exactly one.
func validateBulkAttributeOps(ops []structs.BulkAttributeOp) error {
	for i := range ops {
		hasID := ops[i].AttributeID != nil
		hasName := ops[i].AttributeNameNew != ""
		if hasID && hasName {
			return fmt.Errorf("%w: attributes[%d]: provide either attribute or attribute_name_new, not both", lib.ErrValidation, i)
		}
		if ops[i].ID == nil && !hasID && !hasName {
			return fmt.Errorf("%w: attributes[%d]: provide attribute or attribute_name_new", lib.ErrValidation, i)
		}
	}
	return nil
}

func (ps *ProductService) requireProduct(ctx context.Context, id uuid.UUID) (*tables.Product, error) {
	product, err := database.Query[tables.Product](ps.db).Where("id", id).First(ctx)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", lib.ErrNotFound, id)
	}
	return product, nil
}

// GetImage resolves a blob ref to its stored payload for serving.
func (ps *ProductService) GetImage(ctx context.Context, ref string) ([]byte, *storage.ObjectInfo, error) {
	return ps.store.Get(ctx, ref)
}
