package order

import (
	"github.com/shopspring/decimal"
)

// DefaultTaxRate is applied to the cart subtotal at checkout unless configured otherwise.
var DefaultTaxRate = decimal.RequireFromString("0.08")

// Policy is the fixed part of every composed order.
type Policy struct {
	StoreName string
	// Destination is the WhatsApp number orders are sent to, digits only with country code.
	Destination string
	TaxRate     decimal.Decimal
}

// Order is a composed order ready for handoff. It is never stored.
type Order struct {
	Summary    string          `json:"summary"`
	ChannelURI string          `json:"channel_uri"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}
