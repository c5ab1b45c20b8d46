package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hongminglow/eventos-be/internal/apperr"
	"github.com/hongminglow/eventos-be/internal/imagehost"
	"github.com/hongminglow/eventos-be/internal/metrics"
)

// UploadInput is one received image.
type UploadInput struct {
	Body         io.Reader
	Size         int64
	ContentType  string
	OriginalName string
	// DisplayName replaces the stored name when set. The original extension is kept.
	DisplayName  string
}

// UploadRelay forwards images to the configured image host.
type UploadRelay struct {
	host    imagehost.Uploader
	metrics metrics.Recorder
}

// NewUploadRelay creates a relay.
func NewUploadRelay(host imagehost.Uploader, rec metrics.Recorder) *UploadRelay {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &UploadRelay{host: host, metrics: rec}
}

// Upload relays in and returns the URL the host serves it from. Empty input
// never reaches the host.
func (u *UploadRelay) Upload(ctx context.Context, in UploadInput) (string, error) {
	if in.Body == nil || in.Size <= 0 {
		return "", apperr.NoFile()
	}

	name := uploadName(in.OriginalName, in.DisplayName, in.ContentType)
	zerolog.Ctx(ctx).Info().
		Str("name", name).
		Str("content_type", in.ContentType).
		Int64("size_kb", (in.Size+512)/1024).
		Msg("relaying upload")

	url, err := u.host.Upload(ctx, imagehost.File{
		Name:        name,
		ContentType: in.ContentType,
		Size:        in.Size,
		Body:        in.Body,
	})
	u.metrics.RecordProviderCall("image_upload", err)
	if err != nil {
		var hostErr *imagehost.HostError
		if errors.As(err, &hostErr) {
			zerolog.Ctx(ctx).Error().Err(err).Interface("details", hostErr.Details).Msg("image host rejected upload")
			return "", apperr.Relay(hostErr.Details, err)
		}
		zerolog.Ctx(ctx).Error().Err(err).Msg("image upload failed")
		return "", apperr.Relay(err.Error(), err)
	}
	return url, nil
}

func uploadName(original, display, contentType string) string {
	original = filepath.Base(strings.TrimSpace(original))
	if original == "." || original == "/" {
		original = ""
	}
	ext := filepath.Ext(original)

	if display = strings.TrimSpace(display); display != "" {
		display = filepath.Base(display)
		if ext != "" && !strings.EqualFold(filepath.Ext(display), ext) {
			display += ext
		}
		return display
	}
	if original != "" {
		return original
	}
	if ext == "" && contentType != "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}
	return "upload-" + uuid.NewString() + ext
}
