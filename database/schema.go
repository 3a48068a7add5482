package database

import (
	"context"
	"fmt"
	"ravvio_server/structs/tables"
)

// schemaTables lists every table model in dependency order, with the
// foreign keys that give the catalog its cascade semantics: deleting a
// category removes its products, deleting a product removes its attribute
// items and images, deleting an attribute removes the items that use it.
var schemaTables = []struct {
	model       any
	foreignKeys []string
}{
	{model: (*tables.Category)(nil)},
	{model: (*tables.Attribute)(nil)},
	{
		model: (*tables.Product)(nil),
		foreignKeys: []string{
			`("category_id") REFERENCES "categories" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*tables.AttributeItem)(nil),
		foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
			`("attribute_id") REFERENCES "attributes" ("id") ON DELETE CASCADE`,
		},
	},
	{
		model: (*tables.Image)(nil),
		foreignKeys: []string{
			`("product_id") REFERENCES "products" ("id") ON DELETE CASCADE`,
		},
	},
}

// CreateSchema creates all catalog tables if they do not exist yet.
func CreateSchema(ctx context.Context, db *DB) error {
	for _, t := range schemaTables {
		q := db.NewCreateTable().Model(t.model).IfNotExists()
		for _, fk := range t.foreignKeys {
			q = q.ForeignKey(fk)
		}
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to create table for %T: %w", t.model, err)
		}
	}
	return nil
}

// DropSchema drops all catalog tables. Used by tests.
func DropSchema(ctx context.Context, db *DB) error {
	for i := len(schemaTables) - 1; i >= 0; i-- {
		q := db.NewDropTable().Model(schemaTables[i].model).IfExists()
		if _, err := q.Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table for %T: %w", schemaTables[i].model, err)
		}
	}
	return nil
}
