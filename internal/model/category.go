package model

// Category groups products. A product references at most one category.
type Category struct {
	ID           int64  `json:"id" db:"id"`
	CategoryName string `json:"category_name" db:"category_name"`

	// Products holds the category's products when expansion was requested.
	Products []Product `json:"products,omitempty"`
}

// CategoryInput is the request payload for creating or updating a category.
type CategoryInput struct {
	CategoryName string `json:"category_name" validate:"required,max=255"`
}
