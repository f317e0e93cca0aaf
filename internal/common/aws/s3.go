// internal/common/aws/s3.go
package aws

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// ObjectStore writes objects to one bucket and returns their public URL.
type ObjectStore struct {
	client        S3API
	bucket        string
	region        string
	publicBaseURL string
}

func NewS3Client(cfg awssdk.Config, bucket, publicBaseURL string) *ObjectStore {
	return NewObjectStore(s3.NewFromConfig(cfg), bucket, cfg.Region, publicBaseURL)
}

func NewObjectStore(client S3API, bucket, region, publicBaseURL string) *ObjectStore {
	return &ObjectStore{
		client:        client,
		bucket:        bucket,
		region:        region,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// Put uploads data under key and returns the URL the object is served from.
func (o *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := o.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      awssdk.String(o.bucket),
		Key:         awssdk.String(key),
		Body:        bytes.NewReader(data),
		ContentType: awssdk.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", key, err)
	}
	return o.URL(key), nil
}

// URL uses the configured public base when set, otherwise the virtual-hosted
// bucket endpoint.
func (o *ObjectStore) URL(key string) string {
	escaped := escapeKey(key)
	if o.publicBaseURL != "" {
		return o.publicBaseURL + "/" + escaped
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", o.bucket, o.region, escaped)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
