package services

import (
	"context"
	"errors"
	"fmt"
	"ravvio_server/database"
	"ravvio_server/lib"
	"ravvio_server/structs"
	"ravvio_server/structs/tables"
	"testing"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func createTestProduct(t *testing.T, sm *ServiceManager, categoryID uuid.UUID, name string) *tables.Product {
	t.Helper()

	product, err := sm.ProductService.Create(context.Background(), &structs.ProductWriteRequest{
		Name:       &name,
		CategoryID: &categoryID,
	})
	if err != nil {
		t.Fatalf("failed to create product %q: %v", name, err)
	}
	return product
}

func testUpload(name string) structs.ImageUpload {
	return structs.ImageUpload{
		Filename:    name,
		ContentType: "image/png",
		Data:        []byte("png-bytes-" + name),
	}
}

func TestProductLookupQualifiesJoinedColumns(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Lamps")
	product := createTestProduct(t, sm, category.ID, "Desk Lamp")

	// Category and product both carry id, name and created_at columns,
	// so joined lookups must resolve through the product alias.
	got, err := database.Query[tables.Product](db).
		Where("p.id", product.ID).
		Relation("Category").
		First(ctx)
	if err != nil {
		t.Fatalf("aliased lookup failed: %v", err)
	}
	if got == nil || got.Category == nil || got.Category.ID != category.ID {
		t.Fatalf("expected product joined with its category, got %+v", got)
	}
}

func TestProductImagesCarryServingURL(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Posters")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:           strPtr("City Poster"),
		CategoryID:     &category.ID,
		UploadedImages: []structs.ImageUpload{testUpload("city.png")},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	image := product.Images[0]
	want := "/media/product_images/" + image.BlobRef
	if image.URL != want {
		t.Errorf("expected image url %q, got %q", want, image.URL)
	}
}

func TestProductCreateWithAttributesAndImages(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Chairs")

	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:        strPtr("Armchair"),
		Description: strPtr("A comfortable armchair"),
		Price:       floatPtr(249.99),
		CategoryID:  &category.ID,
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeNameNew: "Color", Value: "Navy"},
			{AttributeNameNew: "Material", Value: "Velvet"},
		},
		UploadedImages: []structs.ImageUpload{
			testUpload("front.png"),
			testUpload("side.png"),
		},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	if product.Price == nil || *product.Price != 249.99 {
		t.Errorf("unexpected price: %+v", product.Price)
	}
	if product.Category == nil || product.Category.Name != "Chairs" {
		t.Errorf("expected nested category, got %+v", product.Category)
	}
	if len(product.Attributes) != 2 {
		t.Fatalf("expected 2 attribute items, got %d", len(product.Attributes))
	}
	for _, item := range product.Attributes {
		if item.Attribute == nil {
			t.Error("expected attribute items to carry their attribute row")
		}
	}
	if len(product.Images) != 2 {
		t.Fatalf("expected 2 images, got %d", len(product.Images))
	}
	for i, image := range product.Images {
		if image.DisplayOrder != i {
			t.Errorf("expected image %d to have order %d, got %d", i, i, image.DisplayOrder)
		}
	}
}

func TestProductCreatePriceIsOptional(t *testing.T) {
	sm, _, _ := newTestServices(t)

	category := createTestCategory(t, sm, "Misc")
	product := createTestProduct(t, sm, category.ID, "Mystery Box")

	if product.Price != nil {
		t.Errorf("expected nil price, got %v", *product.Price)
	}
}

func TestProductCreateValidatesAttributesBeforeWriting(t *testing.T) {
	sm, db, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Tables")
	existing, err := sm.AttributeService.Create(ctx, &structs.AttributeWriteRequest{Name: strPtr("Color")})
	if err != nil {
		t.Fatalf("failed to create attribute: %v", err)
	}

	cases := []struct {
		name  string
		input structs.AttributeItemInput
	}{
		{"both references", structs.AttributeItemInput{AttributeID: &existing.ID, AttributeNameNew: "Color", Value: "Red"}},
		{"no reference", structs.AttributeItemInput{Value: "Red"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
				Name:              strPtr("Side Table"),
				CategoryID:        &category.ID,
				ProductAttributes: []structs.AttributeItemInput{tc.input},
			})
			if !errors.Is(err, lib.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}

			count, err := database.Query[tables.Product](db).Count(context.Background())
			if err != nil {
				t.Fatalf("failed to count products: %v", err)
			}
			if count != 0 {
				t.Errorf("expected no products written, got %d", count)
			}
		})
	}
}

func TestProductCreateRejectsUnknownAttributeID(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Shelves")
	missing := uuid.New()

	_, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:       strPtr("Bookshelf"),
		CategoryID: &category.ID,
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeID: &missing, Value: "Oak"},
		},
	})
	if !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for unknown attribute id, got %v", err)
	}
}

func TestProductCreateRejectsUnknownCategory(t *testing.T) {
	sm, _, _ := newTestServices(t)

	missing := uuid.New()
	_, err := sm.ProductService.Create(context.Background(), &structs.ProductWriteRequest{
		Name:       strPtr("Orphan"),
		CategoryID: &missing,
	})
	if !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for unknown category, got %v", err)
	}
}

func TestProductUpdatePartialScalars(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Lamps")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:        strPtr("Desk Lamp"),
		Description: strPtr("Adjustable arm"),
		Price:       floatPtr(39.50),
		CategoryID:  &category.ID,
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	updated, err := sm.ProductService.Update(ctx, product.ID, &structs.ProductWriteRequest{
		Name: strPtr("Desk Lamp v2"),
	})
	if err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	if updated.Name != "Desk Lamp v2" {
		t.Errorf("expected renamed product, got %q", updated.Name)
	}
	if updated.Description != "Adjustable arm" {
		t.Errorf("expected description untouched, got %q", updated.Description)
	}
	if updated.Price == nil || *updated.Price != 39.50 {
		t.Errorf("expected price untouched, got %+v", updated.Price)
	}
}

func TestProductUpdateReplacesAttributes(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Sofas")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:       strPtr("Loveseat"),
		CategoryID: &category.ID,
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeNameNew: "Color", Value: "Gray"},
			{AttributeNameNew: "Seats", Value: "2"},
		},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	updated, err := sm.ProductService.Update(ctx, product.ID, &structs.ProductWriteRequest{
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeNameNew: "Color", Value: "Beige"},
		},
	})
	if err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	if len(updated.Attributes) != 1 {
		t.Fatalf("expected full replacement to 1 item, got %d", len(updated.Attributes))
	}
	if updated.Attributes[0].Value != "Beige" {
		t.Errorf("expected new value Beige, got %q", updated.Attributes[0].Value)
	}
}

func TestProductUpdateEmptyListsLeaveRelationsUntouched(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Desks")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:       strPtr("Standing Desk"),
		CategoryID: &category.ID,
		ProductAttributes: []structs.AttributeItemInput{
			{AttributeNameNew: "Height", Value: "120cm"},
		},
		UploadedImages: []structs.ImageUpload{testUpload("desk.png")},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	updated, err := sm.ProductService.Update(ctx, product.ID, &structs.ProductWriteRequest{
		Price: floatPtr(499),
	})
	if err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	if len(updated.Attributes) != 1 {
		t.Errorf("expected attributes untouched, got %d", len(updated.Attributes))
	}
	if len(updated.Images) != 1 {
		t.Errorf("expected images untouched, got %d", len(updated.Images))
	}
}

func TestProductUpdateAppendsImagesAfterExisting(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Beds")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:           strPtr("Daybed"),
		CategoryID:     &category.ID,
		UploadedImages: []structs.ImageUpload{testUpload("a.png"), testUpload("b.png")},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	updated, err := sm.ProductService.Update(ctx, product.ID, &structs.ProductWriteRequest{
		UploadedImages: []structs.ImageUpload{testUpload("c.png")},
	})
	if err != nil {
		t.Fatalf("failed to update product: %v", err)
	}

	if len(updated.Images) != 3 {
		t.Fatalf("expected 3 images, got %d", len(updated.Images))
	}
	if updated.Images[2].DisplayOrder != 2 {
		t.Errorf("expected appended image at order 2, got %d", updated.Images[2].DisplayOrder)
	}
}

func TestProductUpdateMissing(t *testing.T) {
	sm, _, _ := newTestServices(t)

	_, err := sm.ProductService.Update(context.Background(), uuid.New(), &structs.ProductWriteRequest{
		Name: strPtr("Ghost"),
	})
	if !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestProductListPaginationAndFilters(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	chairs := createTestCategory(t, sm, "Chairs")
	tablesCat := createTestCategory(t, sm, "Tables")

	for i := 0; i < 12; i++ {
		createTestProduct(t, sm, chairs.ID, fmt.Sprintf("Chair %02d", i))
	}
	createTestProduct(t, sm, tablesCat.ID, "Dining Table")

	// Default page size is 10.
	page, err := sm.ProductService.List(ctx, &ProductListOptions{})
	if err != nil {
		t.Fatalf("failed to list products: %v", err)
	}
	if len(page.Data) != 10 {
		t.Errorf("expected default page of 10, got %d", len(page.Data))
	}
	if page.Pagination.Total != 13 {
		t.Errorf("expected total 13, got %d", page.Pagination.Total)
	}

	// Page size is capped.
	capped, err := sm.ProductService.List(ctx, &ProductListOptions{PageSize: 5000})
	if err != nil {
		t.Fatalf("failed to list products: %v", err)
	}
	if capped.Pagination.PageSize != database.MaxPageSize {
		t.Errorf("expected page size capped at %d, got %d", database.MaxPageSize, capped.Pagination.PageSize)
	}

	// Category filter.
	filtered, err := sm.ProductService.List(ctx, &ProductListOptions{CategoryID: &tablesCat.ID})
	if err != nil {
		t.Fatalf("failed to list products: %v", err)
	}
	if len(filtered.Data) != 1 || filtered.Data[0].Name != "Dining Table" {
		t.Errorf("unexpected category filter result: %+v", filtered.Data)
	}

	// Case-insensitive search over the name.
	searched, err := sm.ProductService.List(ctx, &ProductListOptions{SearchTerm: "dining"})
	if err != nil {
		t.Fatalf("failed to search products: %v", err)
	}
	if len(searched.Data) != 1 {
		t.Errorf("expected 1 search hit, got %d", len(searched.Data))
	}
}

func TestProductListSorting(t *testing.T) {
	sm, _, _ := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Stools")
	for i, price := range []float64{30, 10, 20} {
		_, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
			Name:       strPtr(fmt.Sprintf("Stool %d", i)),
			Price:      floatPtr(price),
			CategoryID: &category.ID,
		})
		if err != nil {
			t.Fatalf("failed to create product: %v", err)
		}
	}

	result, err := sm.ProductService.List(ctx, &ProductListOptions{SortBy: "price"})
	if err != nil {
		t.Fatalf("failed to list sorted: %v", err)
	}
	prices := make([]float64, 0, len(result.Data))
	for _, p := range result.Data {
		prices = append(prices, *p.Price)
	}
	if prices[0] != 10 || prices[1] != 20 || prices[2] != 30 {
		t.Errorf("expected ascending prices, got %v", prices)
	}

	if _, err := sm.ProductService.List(ctx, &ProductListOptions{SortBy: "caption"}); !errors.Is(err, lib.ErrValidation) {
		t.Fatalf("expected validation error for unsupported sort, got %v", err)
	}
}

func TestProductDeleteRemovesRowsAndBlobs(t *testing.T) {
	sm, db, store := newTestServices(t)
	ctx := context.Background()

	category := createTestCategory(t, sm, "Mirrors")
	product, err := sm.ProductService.Create(ctx, &structs.ProductWriteRequest{
		Name:           strPtr("Wall Mirror"),
		CategoryID:     &category.ID,
		UploadedImages: []structs.ImageUpload{testUpload("mirror.png")},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}
	ref := product.Images[0].BlobRef

	if err := sm.ProductService.Delete(ctx, product.ID); err != nil {
		t.Fatalf("failed to delete product: %v", err)
	}

	exists, err := database.Query[tables.Image](db).Where("product_id", product.ID).Exists(ctx)
	if err != nil {
		t.Fatalf("failed to check images: %v", err)
	}
	if exists {
		t.Error("expected image rows to cascade")
	}

	if _, err := store.GetInfo(ctx, ref); err == nil {
		t.Error("expected blob to be removed from the store")
	}
}

func TestProductGetMissing(t *testing.T) {
	sm, _, _ := newTestServices(t)

	_, err := sm.ProductService.Get(context.Background(), uuid.New())
	if !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
