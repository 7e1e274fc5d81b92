package model

// DefaultStock is the stock level assigned when a product is created
// without an explicit stock value.
const DefaultStock = 10

// Product represents a product in the catalogue.
type Product struct {
	ID          int64   `json:"id" db:"id"`
	ProductName string  `json:"product_name" db:"product_name"`
	Price       float64 `json:"price" db:"price"`
	Stock       int32   `json:"stock" db:"stock"`
	CategoryID  *int64  `json:"category_id" db:"category_id"`

	// Category and Tags are populated when expansion was requested.
	Category *Category `json:"category,omitempty"`
	Tags     []Tag     `json:"tags,omitempty"`
}

// ProductCreateInput is the request payload for creating a product.
// TagIDs may be omitted entirely, which is equivalent to an empty list.
type ProductCreateInput struct {
	ProductName string  `json:"product_name" validate:"required,max=255"`
	Price       float64 `json:"price" validate:"gte=0"`
	Stock       *int32  `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64  `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      []int64 `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

// ProductUpdateInput is the request payload for updating a product.
// Scalar fields are applied only when present. A nil TagIDs means the key
// was absent from the body and the product's tag associations are left
// untouched; an explicit empty list clears them. encoding/json keeps the
// two apart: absent key leaves the slice nil, [] allocates an empty one.
type ProductUpdateInput struct {
	ProductName *string  `json:"product_name" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Stock       *int32   `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64   `json:"category_id" validate:"omitempty,gt=0"`
	TagIDs      []int64  `json:"tagIds" validate:"omitempty,dive,gt=0"`
}

// HasScalarChanges reports whether the update carries any product-row field.
func (in *ProductUpdateInput) HasScalarChanges() bool {
	return in.ProductName != nil || in.Price != nil || in.Stock != nil || in.CategoryID != nil
}
