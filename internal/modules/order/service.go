package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/georgemunganga/corazonehives/internal/modules/cart"
	"github.com/georgemunganga/corazonehives/internal/modules/delivery"
	"github.com/georgemunganga/corazonehives/internal/notify"
)

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrIncompleteDelivery = errors.New("delivery information is incomplete")
)

// Service runs checkout: compose, clear the session stores, hand off.
type Service struct {
	policy Policy
	log    *logrus.Logger
}

func NewService(policy Policy, logger *logrus.Logger) *Service {
	return &Service{policy: policy, log: logger}
}

func (s *Service) Policy() Policy { return s.policy }

// Checkout composes the order from the current cart and delivery details, clears both
// stores and opens the order link on ch. The order is composed before anything is cleared.
// Failing to clear a store is logged and does not stop the handoff.
func (s *Service) Checkout(ctx context.Context, c *cart.Store, d *delivery.Store, ch Channel, n notify.Notifier) (*Order, error) {
	if c.Count() == 0 {
		n.Notify(notify.Warning("Your cart is empty", "Add some treats before checking out"))
		return nil, ErrEmptyCart
	}
	if !d.Complete() {
		n.Notify(notify.Warning("Missing delivery details", "Please fill in your name, phone, area and address"))
		return nil, ErrIncompleteDelivery
	}

	items := c.Items()
	o := Compose(items, d.Info(), s.policy)

	if err := multierr.Append(c.Clear(ctx), d.Clear(ctx)); err != nil {
		s.log.WithError(err).Warn("checkout: clearing session stores failed")
	}

	if err := ch.Open(ctx, o.ChannelURI); err != nil {
		s.log.WithError(err).Error("checkout: order handoff failed")
		n.Notify(notify.Error("Error", "We could not open WhatsApp for your order"))
		return &o, errors.Wrap(err, "open order channel")
	}

	s.log.WithFields(logrus.Fields{
		"lines": len(items),
		"total": o.Total.String(),
	}).Info("Order handed off")
	n.Notify(notify.Success("Order placed", "Your order will be sent via WhatsApp for confirmation"))
	return &o, nil
}
