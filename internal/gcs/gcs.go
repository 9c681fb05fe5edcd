package gcs

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"cloud.google.com/go/storage"
)

// Store abstracts source-document storage so the pipeline and handlers
// can be tested with fakes.
type Store interface {
	// Fetch downloads the bytes behind a gs://bucket/object URI.
	Fetch(ctx context.Context, uri string) ([]byte, error)

	// Put uploads a payload under the given object name and returns its URI.
	Put(ctx context.Context, bucket, objectName string, r io.Reader, contentType string) (string, error)
}

// Client is the Cloud Storage backed Store. It assumes Application
// Default Credentials are configured.
type Client struct{}

// NewClient returns a Cloud Storage client wrapper.
func NewClient() *Client {
	return &Client{}
}

// Fetch downloads the file bytes from the given gs:// URI.
func (c *Client) Fetch(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := splitURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: create storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs: open object %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("gcs: read object %s/%s: %w", bucket, object, err)
	}
	return data, nil
}

// Put streams a payload into bucket/objectName and returns the gs:// URI.
func (c *Client) Put(ctx context.Context, bucket, objectName string, r io.Reader, contentType string) (string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("gcs: create storage client: %w", err)
	}
	defer client.Close()

	w := client.Bucket(bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write object %s/%s: %w", bucket, objectName, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: finalize object %s/%s: %w", bucket, objectName, err)
	}
	return fmt.Sprintf("gs://%s/%s", bucket, objectName), nil
}

// splitURI breaks "gs://bucket/path/to/object" into bucket and object.
func splitURI(uri string) (bucket, object string, err error) {
	if !strings.HasPrefix(uri, "gs://") {
		return "", "", fmt.Errorf("gcs: invalid URI %q", uri)
	}
	parts := strings.SplitN(strings.TrimPrefix(uri, "gs://"), "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("gcs: URI %q has no object path", uri)
	}
	return parts[0], parts[1], nil
}

// Filename extracts the object filename from a gs:// URI,
// e.g. "gs://bucket/folder/file.pdf" -> "file.pdf".
func Filename(uri string) string {
	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 {
		return trimmed
	}
	return path.Base(parts[1])
}

var _ Store = (*Client)(nil)
