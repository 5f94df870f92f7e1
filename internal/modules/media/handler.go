package media

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	service *Service
	log     *logrus.Logger
}

func NewHandler(service *Service, logger *logrus.Logger) *Handler {
	return &Handler{service: service, log: logger}
}

// RegisterRoutes mounts the upload endpoint relative to the admin router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/upload", h.upload)
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	// multipart framing needs a little room on top of the file itself
	r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond(w, http.StatusRequestEntityTooLarge, map[string]string{"error": ErrTooLarge.Error()})
			return
		}
		respond(w, http.StatusBadRequest, map[string]string{"error": "No file provided"})
		return
	}
	defer file.Close()

	url, err := h.service.Save(r.Context(), file, header.Header.Get("Content-Type"))
	switch {
	case errors.Is(err, ErrNotImage):
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrTooLarge):
		respond(w, http.StatusRequestEntityTooLarge, map[string]string{"error": err.Error()})
	case err != nil:
		h.log.WithError(err).Error("image upload failed")
		respond(w, http.StatusInternalServerError, map[string]string{"error": "Upload failed"})
	default:
		respond(w, http.StatusCreated, map[string]string{"url": url})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
