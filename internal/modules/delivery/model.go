package delivery

import (
	"strings"

	"github.com/go-faster/errors"
)

// StorageKey is the local-storage key owned by the delivery store.
const StorageKey = "corazonehives-delivery"

var ErrUnknownField = errors.New("unknown delivery field")

// Info is where and to whom an order is delivered.
type Info struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Area    string `json:"area"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// Complete reports whether every field except Notes is filled in.
func (i Info) Complete() bool {
	return i.Name != "" && i.Phone != "" && i.Area != "" && i.Address != ""
}

// Field names one settable Info field.
type Field int

const (
	FieldName Field = iota + 1
	FieldPhone
	FieldArea
	FieldAddress
	FieldNotes
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPhone:
		return "phone"
	case FieldArea:
		return "area"
	case FieldAddress:
		return "address"
	case FieldNotes:
		return "notes"
	}
	return "unknown"
}

// ParseField maps a wire field name to a Field.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return FieldName, nil
	case "phone":
		return FieldPhone, nil
	case "area":
		return FieldArea, nil
	case "address":
		return FieldAddress, nil
	case "notes":
		return FieldNotes, nil
	}
	return 0, errors.Wrapf(ErrUnknownField, "%q", s)
}

// With returns a copy of i with field set to value.
func (i Info) With(field Field, value string) (Info, error) {
	switch field {
	case FieldName:
		i.Name = value
	case FieldPhone:
		i.Phone = value
	case FieldArea:
		i.Area = value
	case FieldAddress:
		i.Address = value
	case FieldNotes:
		i.Notes = value
	default:
		return i, errors.Wrapf(ErrUnknownField, "%d", int(field))
	}
	return i, nil
}
