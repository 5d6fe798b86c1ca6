package service

import (
	"context"
	"strings"
	"time"

	"github.com/pageza/alchemorsel-recipes/backend/internal/models"
)

// ImageLinker turns a stored image reference into a URL a client can fetch.
// ok is false when the reference is not one the linker handles.
type ImageLinker interface {
	Link(ctx context.Context, ref string) (url string, ok bool, err error)
}

// Presigner issues time limited GET URLs for objects in a bucket.
type Presigner interface {
	GeneratePresignedURL(ctx context.Context, objectKey string, expiration time.Duration) (string, error)
}

// S3ImageLinker presigns recipe images stored as s3://<bucket>/<key>.
type S3ImageLinker struct {
	presigner Presigner
	bucket    string
	expiry    time.Duration
}

// NewS3ImageLinker creates a linker for objects of bucket
func NewS3ImageLinker(presigner Presigner, bucket string, expiry time.Duration) *S3ImageLinker {
	if expiry <= 0 {
		expiry = 15 * time.Minute
	}
	return &S3ImageLinker{presigner: presigner, bucket: bucket, expiry: expiry}
}

func (l *S3ImageLinker) Link(ctx context.Context, ref string) (string, bool, error) {
	bucket, key, ok := parseS3Ref(ref)
	if !ok || bucket != l.bucket {
		return "", false, nil
	}
	url, err := l.presigner.GeneratePresignedURL(ctx, key, l.expiry)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func parseS3Ref(ref string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(ref), "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, found = strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// linkImages rewrites image references in place. A failing link leaves the
// stored reference untouched.
func (s *RecipeService) linkImages(ctx context.Context, recipes ...*models.Recipe) {
	if s.images == nil {
		return
	}
	for _, r := range recipes {
		if r == nil || r.ImageURL == "" {
			continue
		}
		url, ok, err := s.images.Link(ctx, r.ImageURL)
		if err != nil {
			s.log.Warn("failed to link recipe image", "recipe_id", r.ID, "error", err)
			continue
		}
		if ok {
			r.ImageURL = url
		}
	}
}
