package structs

import "github.com/google/uuid"

// AttributeItemInput is one attribute spec in a product write payload.
// Exactly one of AttributeID / AttributeNameNew must be set.
type AttributeItemInput struct {
	AttributeID      *uuid.UUID `json:"attribute_id,omitempty"`
	AttributeNameNew string     `json:"attribute_name_new,omitempty"`
	Value            string     `json:"value"`
}

// ImageUpload carries one decoded binary payload on its way to the blob
// store.
type ImageUpload struct {
	Filename    string `json:"-"`
	ContentType string `json:"-"`
	Data        []byte `json:"-"`
}

// ProductWriteRequest is the payload for product create and update.
// Scalar fields are pointers so update can tell "absent" from "zero".
type ProductWriteRequest struct {
	Name              *string              `json:"name,omitempty"`
	Description       *string              `json:"description,omitempty"`
	Price             *float64             `json:"price,omitempty"`
	CategoryID        *uuid.UUID           `json:"category_id,omitempty"`
	ProductAttributes []AttributeItemInput `json:"product_attributes,omitempty"`
	UploadedImages    []ImageUpload        `json:"-"`
}

// CategoryWriteRequest is the payload for category create and update.
type CategoryWriteRequest struct {
	Name *string `json:"name,omitempty"`
}

// AttributeWriteRequest is the payload for attribute create and update.
type AttributeWriteRequest struct {
	Name *string `json:"name,omitempty"`
}

// BulkCreateAttributesRequest is the POST /attributes/bulk_create payload.
type BulkCreateAttributesRequest struct {
	Names []string `json:"names"`
}

// ImageOrderInput is one (image id, new order) pair.
type ImageOrderInput struct {
	ID    uuid.UUID `json:"id"`
	Order *int      `json:"order"`
}

// UpdateImageOrderRequest is the POST /products/{id}/update_image_order
// payload.
type UpdateImageOrderRequest struct {
	ImageOrders []ImageOrderInput `json:"image_orders"`
}

// BulkAttributeOp is one entry in a bulk attribute update. When ID is set
// the matching attribute item is updated in place; otherwise a new item is
// created from the attribute reference and value.
type BulkAttributeOp struct {
	ID               *uuid.UUID `json:"id,omitempty"`
	AttributeID      *uuid.UUID `json:"attribute,omitempty"`
	AttributeNameNew string     `json:"attribute_name_new,omitempty"`
	Value            *string    `json:"value,omitempty"`
}

// UpdateAttributesRequest is the POST /products/{id}/update_attributes
// payload.
type UpdateAttributesRequest struct {
	ClearExisting bool              `json:"clear_existing"`
	Attributes    []BulkAttributeOp `json:"attributes"`
}
