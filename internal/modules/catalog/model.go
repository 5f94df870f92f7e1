package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlaceholderImage replaces a missing product image.
const PlaceholderImage = "/placeholder.svg"

// Product is an immutable snapshot of a storefront product. JSON names follow the
// storefront client; the database uses snake_case columns.
type Product struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   decimal.NullDecimal `json:"salePrice"`
	Discount    *int                `json:"discount,omitempty"`
	Image       string              `json:"image"`
	Category    string              `json:"category"`
	CategoryID  string              `json:"category_id"`
	Rating      int                 `json:"rating"`
	Reviews     int                 `json:"reviews"`
	OnSale      bool                `json:"onSale"`
	Popular     bool                `json:"popular"`
}

// UnitPrice is the price a customer pays for one unit: the sale price when one is set
// and non-zero, otherwise the base price.
func (p Product) UnitPrice() decimal.Decimal {
	if p.SalePrice.Valid && !p.SalePrice.Decimal.IsZero() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// Category groups products on the storefront.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SortOrder selects the ordering of a product listing.
type SortOrder string

const (
	SortName      SortOrder = "name"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortRating    SortOrder = "rating"
)

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	Query      string
	CategoryID string
	OnSale     bool
	Popular    bool
	Sort       SortOrder
}

// ProductRequest is the admin payload for creating or replacing a product.
type ProductRequest struct {
	Name        string              `json:"name" validate:"required,max=200"`
	Description string              `json:"description" validate:"max=2000"`
	Price       decimal.Decimal     `json:"price"`
	SalePrice   decimal.NullDecimal `json:"salePrice"`
	Discount    *int                `json:"discount" validate:"omitempty,gte=0,lte=100"`
	Image       string              `json:"image"`
	CategoryID  string              `json:"categoryId" validate:"required,uuid"`
	Rating      int                 `json:"rating" validate:"omitempty,gte=1,lte=5"`
	Reviews     int                 `json:"reviews" validate:"gte=0"`
	OnSale      bool                `json:"onSale"`
	Popular     bool                `json:"popular"`
}

// CategoryRequest is the admin payload for creating or replacing a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"max=16"`
}
