package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/http/respond"
	"github.com/hongminglow/eventos-be/internal/models/dto"
	"github.com/hongminglow/eventos-be/internal/service"
)

const (
	maxFormMemory = 8 << 20
	// formOverhead covers multipart boundaries, part headers and the name field.
	formOverhead  = 64 << 10
)

// UploadHandler accepts a multipart image and relays it to the image host.
type UploadHandler struct {
	relay    *service.UploadRelay
	maxBytes int64
}

// NewUploadHandler constructs the handler. Files above maxBytes are rejected.
func NewUploadHandler(relay *service.UploadRelay, maxBytes int64) *UploadHandler {
	return &UploadHandler{relay: relay, maxBytes: maxBytes}
}

// Register attaches the upload route to r.
func (h *UploadHandler) Register(r chi.Router) {
	r.Post("/api/upload", h.handleUpload)
}

func (h *UploadHandler) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxBytes + formOverhead
	if r.ContentLength > limit {
		respond.AppError(w, r, apperr.PayloadTooLarge(h.maxBytes))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.AppError(w, r, apperr.PayloadTooLarge(h.maxBytes))
			return
		}
		respond.AppError(w, r, apperr.NoFile())
		return
	}
	defer r.MultipartForm.RemoveAll()

	in := service.UploadInput{DisplayName: r.FormValue("name")}
	file, header, err := r.FormFile("file")
	if err == nil {
		defer file.Close()
		if header.Size > h.maxBytes {
			respond.AppError(w, r, apperr.PayloadTooLarge(h.maxBytes))
			return
		}
		in.Body = file
		in.Size = header.Size
		in.OriginalName = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
	}

	url, err := h.relay.Upload(r.Context(), in)
	if err != nil {
		respond.AppError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.UploadResponse{ThumbURL: url})
}
