package gcs

import (
	"context"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"

	"github.com/vidtube/backend/internal/domain/entity"
	"github.com/vidtube/backend/pkg/helpers"
)

// Gateway adapts a GCS bucket to the asset-store contract: upload yields a
// stable {url, public id} pair, delete takes the public id back.
type Gateway struct {
	client *storage.Client
	bucket string
}

func NewGateway(client *storage.Client, bucket string) *Gateway {
	return &Gateway{client: client, bucket: bucket}
}

// Upload stores r under folder/<uuid><ext> and returns its reference.
func (g *Gateway) Upload(ctx context.Context, r io.Reader, folder, filename, contentType string) (entity.AssetReference, error) {
	ext := strings.ToLower(path.Ext(filename))
	objectPath := path.Join(folder, uuid.NewString()+ext)
	url, err := helpers.UploadObject(ctx, g.client, g.bucket, objectPath, contentType, r)
	if err != nil {
		return entity.AssetReference{}, err
	}
	return entity.AssetReference{URL: url, PublicID: objectPath}, nil
}

// Delete removes the object behind publicID. Missing objects are not an error.
func (g *Gateway) Delete(ctx context.Context, publicID string) error {
	return helpers.DeleteObject(ctx, g.client, g.bucket, publicID)
}

// PublicIDFromURL recovers the public id of a previously uploaded asset, or ""
// when the URL does not point into this bucket.
func (g *Gateway) PublicIDFromURL(url string) string {
	return helpers.ObjectPathFromURL(g.bucket, url)
}
