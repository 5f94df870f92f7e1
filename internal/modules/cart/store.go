package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/modules/catalog"
	"github.com/georgemunganga/corazonehives/internal/notify"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

// Store holds one client's cart. Line items keep insertion order and at most one line
// exists per product id. Every mutation writes the whole cart back to local storage.
//
// A Store is not safe for concurrent use.
type Store struct {
	local    storage.Local
	notifier notify.Notifier
	log      logrus.FieldLogger
	items    []LineItem
}

// NewStore loads the cart saved in local. An absent or unreadable cart starts empty.
func NewStore(ctx context.Context, local storage.Local, notifier notify.Notifier, logger logrus.FieldLogger) *Store {
	s := &Store{local: local, notifier: notifier, log: logger}
	s.items = s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) []LineItem {
	raw, ok, err := s.local.Get(ctx, StorageKey)
	if err != nil {
		s.log.WithError(err).Warn("cart: reading saved cart failed, starting empty")
		return nil
	}
	if !ok {
		return nil
	}

	var saved []LineItem
	if err := json.Unmarshal([]byte(raw), &saved); err != nil {
		s.log.WithError(err).Warn("cart: saved cart is unparseable, starting empty")
		return nil
	}

	items := make([]LineItem, 0, len(saved))
	seen := make(map[string]bool, len(saved))
	for _, li := range saved {
		if li.ID == "" || li.Quantity <= 0 || seen[li.ID] {
			continue
		}
		seen[li.ID] = true
		items = append(items, li)
	}
	return items
}

func (s *Store) save(ctx context.Context) error {
	items := s.items
	if items == nil {
		items = []LineItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	if err := s.local.Set(ctx, StorageKey, string(raw)); err != nil {
		s.log.WithError(err).Error("cart: saving cart failed")
		return errors.Wrap(err, "save cart")
	}
	return nil
}

func (s *Store) indexOf(productID string) int {
	for i, li := range s.items {
		if li.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts one unit of p in the cart, creating the line on first add.
func (s *Store) Add(ctx context.Context, p catalog.Product) error {
	if i := s.indexOf(p.ID); i >= 0 {
		s.items[i].Quantity++
		s.notifier.Notify(notify.Success("Updated cart", fmt.Sprintf("%s quantity increased", p.Name)))
	} else {
		s.items = append(s.items, LineItem{Product: p, Quantity: 1})
		s.notifier.Notify(notify.Success("Added to cart", fmt.Sprintf("%s has been added to your cart", p.Name)))
	}
	return s.save(ctx)
}

// Remove deletes the line for productID. Removing an absent product is a no-op.
func (s *Store) Remove(ctx context.Context, productID string) error {
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.save(ctx)
}

// UpdateQuantity replaces the quantity of productID's line. A quantity of zero or less
// removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity <= 0 {
		return s.Remove(ctx, productID)
	}
	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = quantity
	return s.save(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.items = nil
	return s.save(ctx)
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the exact sum of every line total.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, li := range s.items {
		total = total.Add(li.LineTotal())
	}
	return total
}

// Count is the number of units in the cart, not the number of lines.
func (s *Store) Count() int {
	n := 0
	for _, li := range s.items {
		n += li.Quantity
	}
	return n
}
