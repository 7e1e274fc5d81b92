package model

// Tag labels products. The relation to products is many-to-many through
// the product_tags join table.
type Tag struct {
	ID      int64  `json:"id" db:"id"`
	TagName string `json:"tag_name" db:"tag_name"`

	// Products holds the tagged products when expansion was requested.
	Products []Product `json:"products,omitempty"`
}

// TagInput is the request payload for creating or updating a tag.
type TagInput struct {
	TagName string `json:"tag_name" validate:"required,max=255"`
}

// ProductTag is one row of the product_tags join table. Rows are written
// only by product creation and tag reconciliation, never addressed by
// clients directly.
type ProductTag struct {
	ID        int64 `json:"id" db:"id"`
	ProductID int64 `json:"product_id" db:"product_id"`
	TagID     int64 `json:"tag_id" db:"tag_id"`
}
