package cart

import (
	"github.com/shopspring/decimal"

	"github.com/georgemunganga/corazonehives/internal/modules/catalog"
)

// StorageKey is the local-storage key owned by the cart store.
const StorageKey = "pinkie-cart"

// LineItem is a product snapshot plus the quantity ordered. It serialises flat, with the
// product fields alongside "quantity".
type LineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is the unit price times the quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice().Mul(decimal.NewFromInt(int64(li.Quantity)))
}
