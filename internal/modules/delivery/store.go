package delivery

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/storage"
)

// Store holds one client's delivery details and mirrors them to local storage after
// every change. A Store is not safe for concurrent use.
type Store struct {
	local storage.Local
	log   logrus.FieldLogger
	info  Info
}

// NewStore loads the saved delivery details, starting empty when none are readable.
func NewStore(ctx context.Context, local storage.Local, logger logrus.FieldLogger) *Store {
	s := &Store{local: local, log: logger}
	raw, ok, err := local.Get(ctx, StorageKey)
	switch {
	case err != nil:
		s.log.WithError(err).Warn("delivery: reading saved details failed, starting empty")
	case ok:
		if err := json.Unmarshal([]byte(raw), &s.info); err != nil {
			s.log.WithError(err).Warn("delivery: saved details are unparseable, starting empty")
			s.info = Info{}
		}
	}
	return s
}

func (s *Store) save(ctx context.Context) error {
	raw, err := json.Marshal(s.info)
	if err != nil {
		return errors.Wrap(err, "encode delivery info")
	}
	if err := s.local.Set(ctx, StorageKey, string(raw)); err != nil {
		s.log.WithError(err).Error("delivery: saving details failed")
		return errors.Wrap(err, "save delivery info")
	}
	return nil
}

// Update sets one field, leaving the others untouched.
func (s *Store) Update(ctx context.Context, field Field, value string) error {
	info, err := s.info.With(field, value)
	if err != nil {
		return err
	}
	s.info = info
	return s.save(ctx)
}

// Set replaces the whole record.
func (s *Store) Set(ctx context.Context, info Info) error {
	s.info = info
	return s.save(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.info = Info{}
	return s.save(ctx)
}

func (s *Store) Info() Info { return s.info }

func (s *Store) Complete() bool { return s.info.Complete() }
