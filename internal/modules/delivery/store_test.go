package delivery

import (
	"context"
	"io"
	"testing"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/corazonehives/internal/storage"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type brokenLocal struct{ err error }

func (b brokenLocal) Get(context.Context, string) (string, bool, error) { return "", false, b.err }
func (b brokenLocal) Set(context.Context, string, string) error         { return b.err }

var jane = Info{Name: "Jane", Phone: "0700", Area: "Karen", Address: "12 Rose St"}

func TestInfo_Complete(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want bool
	}{
		{"all required set", jane, true},
		{"notes do not matter", Info{Name: "Jane", Phone: "0700", Area: "Karen", Address: "12 Rose St", Notes: "gate B"}, true},
		{"empty", Info{}, false},
		{"missing name", Info{Phone: "0700", Area: "Karen", Address: "12 Rose St"}, false},
		{"missing phone", Info{Name: "Jane", Area: "Karen", Address: "12 Rose St"}, false},
		{"missing area", Info{Name: "Jane", Phone: "0700", Address: "12 Rose St"}, false},
		{"missing address", Info{Name: "Jane", Phone: "0700", Area: "Karen", Notes: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Complete())
		})
	}
}

func TestParseField(t *testing.T) {
	for _, f := range []Field{FieldName, FieldPhone, FieldArea, FieldAddress, FieldNotes} {
		got, err := ParseField(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	got, err := ParseField(" Address ")
	require.NoError(t, err)
	assert.Equal(t, FieldAddress, got)

	_, err = ParseField("email")
	assert.True(t, errors.Is(err, ErrUnknownField))
}

func TestUpdate_SetsOneField(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, storage.NewMemory(), quietLogger())
	require.NoError(t, s.Set(ctx, jane))

	require.NoError(t, s.Update(ctx, FieldArea, "Westlands"))

	want := jane
	want.Area = "Westlands"
	assert.Equal(t, want, s.Info())

	err := s.Update(ctx, Field(42), "x")
	assert.True(t, errors.Is(err, ErrUnknownField))
	assert.Equal(t, want, s.Info())
}

func TestFieldByField(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, storage.NewMemory(), quietLogger())
	assert.False(t, s.Complete())

	require.NoError(t, s.Update(ctx, FieldName, "Jane"))
	require.NoError(t, s.Update(ctx, FieldPhone, "0700"))
	require.NoError(t, s.Update(ctx, FieldArea, "Karen"))
	assert.False(t, s.Complete())
	require.NoError(t, s.Update(ctx, FieldAddress, "12 Rose St"))
	assert.True(t, s.Complete())
	require.NoError(t, s.Update(ctx, FieldNotes, "Ring twice"))
	assert.True(t, s.Complete())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	s := NewStore(ctx, storage.NewMemory(), quietLogger())
	require.NoError(t, s.Set(ctx, jane))

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, Info{}, s.Info())
	assert.False(t, s.Complete())
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := storage.NewMemory()
	s := NewStore(ctx, mem, quietLogger())
	info := jane
	info.Notes = "Leave with the guard"
	require.NoError(t, s.Set(ctx, info))

	reloaded := NewStore(ctx, mem, quietLogger())
	assert.Equal(t, info, reloaded.Info())

	raw, _, _ := mem.Get(ctx, StorageKey)
	assert.JSONEq(t, `{"name":"Jane","phone":"0700","area":"Karen","address":"12 Rose St","notes":"Leave with the guard"}`, raw)
}

func TestLoad_FailsOpen(t *testing.T) {
	ctx := context.Background()

	mem := storage.NewMemory()
	require.NoError(t, mem.Set(ctx, StorageKey, `{"name": 12`))
	assert.Equal(t, Info{}, NewStore(ctx, mem, quietLogger()).Info())

	s := NewStore(ctx, brokenLocal{err: errors.New("timeout")}, quietLogger())
	assert.Equal(t, Info{}, s.Info())
	assert.Error(t, s.Update(ctx, FieldName, "Jane"))
	assert.Equal(t, "Jane", s.Info().Name)
}
