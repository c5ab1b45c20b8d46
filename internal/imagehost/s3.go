package imagehost

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3 uploads into an S3-compatible bucket. The bucket is created on first use;
// a failed check is retried by the next upload.
type S3 struct {
	client     *minio.Client
	bucket     string
	publicBase string

	mu    sync.Mutex
	ready bool
}

// S3Options configures an S3 uploader.
type S3Options struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	Region     string
	Bucket     string
	// PublicBase is the URL prefix objects are served from. When empty the
	// endpoint URL plus bucket is used.
	PublicBase string
	UseSSL     bool
}

// NewS3 creates an uploader for opts.Bucket.
func NewS3(opts S3Options) (*S3, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}
	publicBase := opts.PublicBase
	if publicBase == "" {
		publicBase = strings.TrimRight(client.EndpointURL().String(), "/") + "/" + opts.Bucket
	}
	return &S3{client: client, bucket: opts.Bucket, publicBase: strings.TrimRight(publicBase, "/")}, nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		return nil
	}

	// Detached from the caller so a dropped request does not fail the check.
	ctx = context.WithoutCancel(ctx)
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
	}
	s.ready = true
	return nil
}

// Upload stores file under a fresh uuid key and returns its public URL. The
// file name travels as object metadata.
func (s *S3) Upload(ctx context.Context, file File) (string, error) {
	if err := s.ensureBucket(ctx); err != nil {
		return "", &HostError{Details: s3Details(err), Err: err}
	}

	key := objectKey(file)
	metadata := map[string]string{
		"Original-Name": url.QueryEscape(file.Name),
		"Uploaded-At":   time.Now().UTC().Format(time.RFC3339),
	}
	_, err := s.client.PutObject(ctx, s.bucket, key, file.Body, file.Size, minio.PutObjectOptions{
		ContentType:  file.ContentType,
		UserMetadata: metadata,
	})
	if err != nil {
		return "", &HostError{Status: minio.ToErrorResponse(err).StatusCode, Details: s3Details(err), Err: err}
	}
	return s.publicBase + "/" + key, nil
}

func objectKey(file File) string {
	ext := strings.ToLower(path.Ext(file.Name))
	if ext == "" && file.ContentType != "" {
		if exts, _ := mime.ExtensionsByType(file.ContentType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	if strings.ContainsAny(ext, "/?#% ") {
		ext = ""
	}
	return uuid.NewString() + ext
}

func s3Details(err error) any {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		return err.Error()
	}
	return map[string]string{"code": resp.Code, "message": resp.Message}
}
