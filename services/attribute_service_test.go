package services

import (
	"context"
	"errors"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func TestAttributeCRUD(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	name := "Material"
	created, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: &name})
	if err != nil {
		t.Fatalf("failed to create attribute: %v", err)
	}

	fetched, err := sm.AttributeService.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to fetch attribute: %v", err)
	}
	if fetched.Name != "Material" {
		t.Errorf("expected name Material, got %q", fetched.Name)
	}

	renamed := "Fabric"
	updated, err := sm.AttributeService.Update(ctx, created.ID, &structs.AttributeWriteRequest{Name: &renamed})
	if err != nil {
		t.Fatalf("failed to update attribute: %v", err)
	}
	if updated.Name != "Fabric" {
		t.Errorf("expected renamed attribute, got %q", updated.Name)
	}

	if err := sm.AttributeService.Delete(ctx, created.ID); err != nil {
		t.Fatalf("failed to delete attribute: %v", err)
	}
	if _, err := sm.AttributeService.Get(ctx, created.ID); !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestAttributeDuplicateNameConflicts(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	name := "Weight"
	if _, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: &name}); err != nil {
		t.Fatalf("failed to create attribute: %v", err)
	}
	if _, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: &name}); !errors.Is(err, lib.ErrConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAttributeListSearchIsCaseInsensitive(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	for _, name := range []string{"Color", "Colorway", "Size"} {
		n := name
		if _, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: &n}); err != nil {
			t.Fatalf("failed to create attribute %q: %v", name, err)
		}
	}

	matches, err := sm.AttributeService.List(ctx, "cOLOr")
	if err != nil {
		t.Fatalf("failed to search attributes: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
}

func TestAttributeBulkCreateResolvesDuplicates(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	results, err := sm.AttributeService.BulkCreate(ctx, &structs.BulkCreateAttributesRequest{
		Names: []string{"Color", "Size", "Color"},
	})
	if err != nil {
		t.Fatalf("failed to bulk create: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("expected one result per input name, got %d", len(results))
	}
	if results[0].ID != results[2].ID {
		t.Error("expected duplicate names to resolve to the same row")
	}

	count, err := database.Query[tables.Attribute](db).Count(ctx)
	if err != nil {
		t.Fatalf("failed to count attributes: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 stored attributes, got %d", count)
	}
}

func TestAttributeBulkCreateRejectsEmptyInput(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	if _, err := sm.AttributeService.BulkCreate(ctx, &structs.BulkCreateAttributesRequest{}); !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for empty names, got %v", err)
	}
	if _, err := sm.AttributeService.BulkCreate(ctx, &structs.BulkCreateAttributesRequest{
		Names: []string{"Color", ""},
	}); !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}

	count, err := database.Query[tables.Attribute](db).Count(ctx)
	if err != nil {
		t.Fatalf("failed to count attributes: %v", err)
	}
	if count != 0 {
		t.Errorf("expected rejected bulk create to persist nothing, got %d rows", count)
	}
}

func TestAttributeInsertConflictKeepsTransactionUsable(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	name := "Finish"
	first, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: &name})
	if err != nil {
		t.Fatalf("failed to create attribute: %v", err)
	}

	// A writer that loses the race on the name must neither error nor
	// leave the transaction aborted for the statements that follow.
	err = database.Transaction(db, ctx, func(tx bun.Tx) error {
		dup := &tables.Attribute{ID: uuid.New(), Name: name}
		if _, err := database.QueryOn[tables.Attribute](tx).OnConflictDoNothing("name").Insert(ctx, dup); err != nil {
			return err
		}

		resolved, err := getOrCreateAttribute(ctx, tx, name)
		if err != nil {
			return err
		}
		if resolved.ID != first.ID {
			t.Errorf("expected the existing attribute %s, got %s", first.ID, resolved.ID)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction failed after conflicting insert: %v", err)
	}

	count, err := database.Query[tables.Attribute](db).Where("name", name).Count(ctx)
	if err != nil {
		t.Fatalf("failed to count attributes: %v", err)
	}
	if count != 1 {
		t.Errorf("expected a single %q row, got %d", name, count)
	}
}

func TestAttributeSearchOrCreate(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	// Missing query is a validation error.
	if _, err := sm.AttributeService.SearchOrCreate(ctx, "", false); !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for empty query, got %v", err)
	}

	// Create mode resolves the name, inserting it when absent.
	first, err := sm.AttributeService.SearchOrCreate(ctx, "Finish", true)
	if err != nil {
		t.Fatalf("failed to create through search: %v", err)
	}
	if len(first) != 1 || first[0].Name != "Finish" {
		t.Fatalf("expected single Finish attribute, got %+v", first)
	}

	// A second create call returns the existing row.
	second, err := sm.AttributeService.SearchOrCreate(ctx, "Finish", true)
	if err != nil {
		t.Fatalf("failed to resolve existing attribute: %v", err)
	}
	if second[0].ID != first[0].ID {
		t.Error("expected create mode to reuse the existing row")
	}

	// Search mode matches substrings case-insensitively.
	matches, err := sm.AttributeService.SearchOrCreate(ctx, "fin", false)
	if err != nil {
		t.Fatalf("failed to search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
}

func TestAttributeDeleteCascadesToItems(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Rugs")
	name := "Runner"
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:       &name,
		CategoryID: &category.ID,
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeNameNew: "Pile", Value: "Low"},
		},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	attribute, err := database.Query[tables.Attribute](db).Where("name", "Pile").First(ctx)
	if err != nil || attribute == nil {
		t.Fatalf("failed to find attribute: %v", err)
	}

	if err := sm.AttributeService.Delete(ctx, attribute.ID); err != nil {
		t.Fatalf("failed to delete attribute: %v", err)
	}

	items, err := database.Query[tables.AttributeItem](db).Where("product_id", product.ID).All(ctx)
	if err != nil {
		t.Fatalf("failed to list items: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected items referencing the attribute to cascade, got %d", len(items))
	}
}

func TestAttributeDeleteMissing(t *testing.T) {
	sm, _, _ := newTestServices(t)

	if err := sm.AttributeService.Delete(context.Background(), uuid.New()); !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
