package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
)

var ErrNotAnImage = errors.New("upload is not an image")

// ImageStore keeps product pictures in a MinIO bucket.
type ImageStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewImageStore serves objects from publicURL when set, otherwise from the
// MinIO endpoint itself.
func NewImageStore(client *minio.Client, bucket, publicURL string) *ImageStore {
	if publicURL == "" && client != nil {
		publicURL = client.EndpointURL().String()
	}
	return &ImageStore{client: client, bucket: bucket, publicURL: strings.TrimRight(publicURL, "/")}
}

// Upload stores file under the product's prefix and returns its public URL.
func (s *ImageStore) Upload(ctx context.Context, productID string, file *multipart.FileHeader) (string, error) {
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}
	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	object := ObjectName(productID, file.Filename)
	_, err = s.client.PutObject(ctx, s.bucket, object, f, file.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("put %s: %w", object, err)
	}
	return s.URL(object), nil
}

func (s *ImageStore) URL(object string) string {
	return s.publicURL + "/" + s.bucket + "/" + object
}

// ObjectName is products/<id>/<random><ext>, so re-uploads never collide.
func ObjectName(productID, filename string) string {
	return "products/" + productID + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
}
