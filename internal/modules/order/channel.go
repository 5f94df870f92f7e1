package order

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-faster/errors"
)

// Channel hands a composed order to the external messaging service. Delivery is
// fire-and-forget: nothing is acknowledged back.
type Channel interface {
	Open(ctx context.Context, uri string) error
}

// ChannelFunc adapts an ordinary function to Channel.
type ChannelFunc func(ctx context.Context, uri string) error

func (f ChannelFunc) Open(ctx context.Context, uri string) error { return f(ctx, uri) }

// NormalizeDestination strips everything but digits from a phone number so it can be used
// in a wa.me link: "+254 700 123 456" -> "254700123456".
func NormalizeDestination(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() < 7 {
		return "", errors.Errorf("invalid WhatsApp number %q", phone)
	}
	return b.String(), nil
}

// ValidURI reports whether uri is a WhatsApp link this package produced.
func ValidURI(uri string) bool {
	u, err := url.Parse(uri)
	if err != nil {
		return false
	}
	return u.Scheme == "https" && u.Host == "wa.me" && u.Query().Has("text")
}
