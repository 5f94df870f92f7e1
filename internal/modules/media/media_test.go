package media

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// smallest valid PNG header
var pngBytes = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, "/uploads/", quietLogger())

	url, err := svc.Save(context.Background(), bytes.NewReader(pngBytes), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	written, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngBytes, written)
}

func TestSave_Rejects(t *testing.T) {
	svc := NewService(t.TempDir(), "/uploads", quietLogger())
	ctx := context.Background()

	_, err := svc.Save(ctx, strings.NewReader("just some text"), "image/png")
	assert.ErrorIs(t, err, ErrNotImage)

	big := append(append([]byte{}, pngBytes...), make([]byte, MaxImageSize)...)
	_, err = svc.Save(ctx, bytes.NewReader(big), "image/png")
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSave_SVG(t *testing.T) {
	svc := NewService(t.TempDir(), "/uploads", quietLogger())
	svg := `<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`

	url, err := svc.Save(context.Background(), strings.NewReader(svg), "image/svg+xml")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".svg"))

	_, err = svc.Save(context.Background(), strings.NewReader(svg), "text/plain")
	assert.ErrorIs(t, err, ErrNotImage)
}

func multipartBody(t *testing.T, field, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="cone.png"`)
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestHandler_Upload(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(NewService(t.TempDir(), "/uploads", quietLogger()), quietLogger()).RegisterRoutes(r)

	for name, tc := range map[string]struct {
		field string
		data  []byte
		code  int
	}{
		"image":    {"file", pngBytes, http.StatusCreated},
		"not this": {"file", []byte("hello"), http.StatusBadRequest},
		"no file":  {"other", pngBytes, http.StatusBadRequest},
	} {
		t.Run(name, func(t *testing.T) {
			body, ct := multipartBody(t, tc.field, "image/png", tc.data)
			req := httptest.NewRequest(http.MethodPost, "/upload", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, tc.code, rec.Code, rec.Body.String())

			if tc.code == http.StatusCreated {
				var out map[string]string
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
				assert.True(t, strings.HasPrefix(out["url"], "/uploads/"))
			}
		})
	}
}
