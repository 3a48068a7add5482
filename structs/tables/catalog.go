package tables

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Category groups products. Deleting a category cascades to its products.
type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	ID        uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name      string    `bun:"name,notnull,unique" json:"name"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Name        string          `bun:"name,notnull" json:"name"`
	Description string          `bun:"description,notnull" json:"description"`
	Price       *float64        `bun:"price" json:"price,omitempty"` // optional
	CategoryID  uuid.UUID       `bun:"category_id,type:uuid,notnull" json:"category_id"`
	Category    *Category       `bun:"rel:belongs-to,join:category_id=id" json:"category,omitempty"`
	CreatedAt   time.Time       `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt   time.Time       `bun:"updated_at,notnull" json:"updated_at"`
	Attributes  []AttributeItem `bun:"rel:has-many,join:id=product_id" json:"attributes,omitempty"`
	Images      []Image         `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
}

// Attribute is a shared vocabulary entry ("Color", "Size"). Names are
// globally unique; many products reference the same attribute through
// their attribute items.
type Attribute struct {
	bun.BaseModel `bun:"table:attributes,alias:a"`

	ID   uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	Name string    `bun:"name,notnull,unique" json:"name"`
}

// AttributeItem is one (attribute, value) assignment on a product. There
// is deliberately no uniqueness constraint on (product_id, attribute_id);
// a product may carry duplicate attribute entries.
type AttributeItem struct {
	bun.BaseModel `bun:"table:attribute_items,alias:ai"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	ProductID   uuid.UUID  `bun:"product_id,type:uuid,notnull" json:"product_id"`
	AttributeID uuid.UUID  `bun:"attribute_id,type:uuid,notnull" json:"attribute_id"`
	Attribute   *Attribute `bun:"rel:belongs-to,join:attribute_id=id" json:"attribute,omitempty"`
	Value       string     `bun:"value,notnull" json:"value"`
}

// Image is one gallery entry. DisplayOrder is a sort key only: values are
// neither unique nor contiguous. Ties break by creation time, which keeps
// insertion order for the sequential writes this API performs.
type Image struct {
	bun.BaseModel `bun:"table:images,alias:i"`

	ID           uuid.UUID `bun:"id,pk,type:uuid" json:"id"`
	ProductID    uuid.UUID `bun:"product_id,type:uuid,notnull" json:"product_id"`
	BlobRef      string    `bun:"blob_ref,notnull" json:"blob_ref"`
	URL          string    `bun:"-" json:"url,omitempty"`
	DisplayOrder int       `bun:"display_order,notnull" json:"order"`
	Caption      string    `bun:"caption" json:"caption,omitempty"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"created_at"`
}
