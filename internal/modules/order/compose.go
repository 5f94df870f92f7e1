package order

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/georgemunganga/corazonehives/internal/modules/cart"
	"github.com/georgemunganga/corazonehives/internal/modules/delivery"
	"github.com/georgemunganga/corazonehives/internal/money"
)

const whatsAppBase = "https://wa.me/"

// Compose renders the order message for items and info and builds the WhatsApp link that
// carries it. The output depends only on its inputs.
func Compose(items []cart.LineItem, info delivery.Info, policy Policy) Order {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal())
	}
	tax := decimal.Zero
	if policy.TaxRate.IsPositive() {
		tax = money.Round(subtotal.Mul(policy.TaxRate))
	}
	total := subtotal.Add(tax)

	var b strings.Builder
	fmt.Fprintf(&b, "🛍️ *New Order from %s*\n\n", policy.StoreName)

	b.WriteString("🛒 *Order Details:*\n")
	for _, li := range items {
		fmt.Fprintf(&b, "%s x%d - %s\n", li.Name, li.Quantity, money.Display(li.LineTotal()))
	}

	b.WriteString("\n📍 *Delivery Information:*\n")
	fmt.Fprintf(&b, "Name: %s\n", info.Name)
	fmt.Fprintf(&b, "Phone: %s\n", info.Phone)
	fmt.Fprintf(&b, "Area: %s\n", info.Area)
	fmt.Fprintf(&b, "Address: %s\n", info.Address)
	if info.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", info.Notes)
	}

	b.WriteString("\n💰 *Order Summary:*\n")
	if policy.TaxRate.IsPositive() {
		fmt.Fprintf(&b, "Subtotal: %s\n", money.Display(subtotal))
		fmt.Fprintf(&b, "Tax: %s\n", money.Display(tax))
	}
	fmt.Fprintf(&b, "Total: %s\n", money.Display(total))

	fmt.Fprintf(&b, "\nThank you for choosing %s! 🍦🍫🌸", policy.StoreName)

	summary := b.String()
	return Order{
		Summary:    summary,
		ChannelURI: whatsAppBase + policy.Destination + "?text=" + encodeURIComponent(summary),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      total,
	}
}

// encodeURIComponent percent-encodes s exactly like the JavaScript function of the same name,
// which WhatsApp links are built with. net/url has no equivalent: QueryEscape turns spaces
// into '+' and escapes !'()*.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
