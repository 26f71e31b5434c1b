package source

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/specialistvlad/prodgraph/internal/ctxlog"
	"github.com/specialistvlad/prodgraph/internal/records"
)

// S3Config locates record documents in an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// bucket is the part of an object store the S3 loader needs.
type bucket interface {
	list(ctx context.Context, prefix string) ([]string, error)
	get(ctx context.Context, key string) ([]byte, error)
}

// S3 loads record documents stored under a prefix of a bucket.
type S3 struct {
	prefix string
	bucket bucket
}

// NewS3 creates a loader backed by a minio client. No request is made until
// Load is called.
func NewS3(cfg S3Config) (*S3, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if access == "" || secret == "" {
		return nil, fmt.Errorf("s3 access key and secret key are required")
	}
	name := strings.TrimSpace(cfg.Bucket)
	if name == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(access, secret, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return &S3{
		prefix: normalizePrefix(cfg.Prefix),
		bucket: &minioBucket{client: client, name: name},
	}, nil
}

// Load implements Loader.
func (s *S3) Load(ctx context.Context) (*records.Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading records from bucket.", "prefix", s.prefix)

	keys, err := s.bucket.list(ctx, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("listing objects under %q: %w", s.prefix, err)
	}

	set := &records.Set{}
	loaded := 0
	for _, key := range keys {
		if !isRecordDocument(key) {
			logger.Debug("Skipping object that is not a record document.", "key", key)
			continue
		}
		data, err := s.bucket.get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("reading object %s: %w", key, err)
		}
		if err := decodeDocument(key, data, set); err != nil {
			return nil, err
		}
		loaded++
		logger.Debug("Record object loaded.", "key", key)
	}

	logger.Info("Records loaded.", "prefix", s.prefix, "objects", loaded, "resources", len(set.Resources), "groups", len(set.Groups), "tasks", len(set.Tasks))
	return set, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

type minioBucket struct {
	client *minio.Client
	name   string
}

func (b *minioBucket) list(ctx context.Context, prefix string) ([]string, error) {
	keys := make([]string, 0, 8)
	for obj := range b.client.ListObjects(ctx, b.name, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if obj.Key == "" || strings.HasSuffix(obj.Key, "/") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (b *minioBucket) get(ctx context.Context, key string) ([]byte, error) {
	obj, err := b.client.GetObject(ctx, b.name, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()
	return io.ReadAll(obj)
}
