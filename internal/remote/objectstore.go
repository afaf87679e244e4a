// Package remote mirrors extract files from an S3 compatible bucket into a
// local download folder so discovery can treat them like share files.
package remote

import (
	"context"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"time"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/logging"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/afero"
)

// Client is the subset of the S3 API used here
type Client interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Object is one remote extract
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// Name is the base name of the object key
func (o Object) Name() string {
	return path.Base(o.Key)
}

// ObjectStore lists and downloads extracts under a bucket prefix
type ObjectStore struct {
	client Client
	bucket string
	prefix string
	fs     afero.Fs
}

// NewObjectStore wraps an existing client. Downloads are written to fs.
func NewObjectStore(client Client, bucket, prefix string, fs afero.Fs) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix, fs: fs}
}

// New builds an S3 client from cfg with static credentials and a custom
// endpoint (R2).
func New(ctx context.Context, cfg config.RemoteConfig, fs afero.Fs) (*ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to configure S3 client: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewObjectStore(client, cfg.Bucket, cfg.Prefix, fs), nil
}

// List returns every object under the prefix whose base name matches pattern
func (s *ObjectStore) List(ctx context.Context, pattern string) ([]Object, error) {
	var out []Object
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s/%s: %w", s.bucket, s.prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			ok, err := path.Match(pattern, path.Base(key))
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			if !ok {
				continue
			}
			out = append(out, Object{
				Key:          key,
				Size:         aws.ToInt64(obj.Size),
				LastModified: aws.ToTime(obj.LastModified),
			})
		}
	}
	return out, nil
}

// FindNewest returns the most recently modified object matching pattern,
// or nil when there is none.
func (s *ObjectStore) FindNewest(ctx context.Context, pattern string) (*Object, error) {
	objects, err := s.List(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return nil, nil
	}
	sort.Slice(objects, func(i, j int) bool {
		if !objects[i].LastModified.Equal(objects[j].LastModified) {
			return objects[i].LastModified.After(objects[j].LastModified)
		}
		return objects[i].Key > objects[j].Key
	})
	return &objects[0], nil
}

// Download copies an object into dir, keeping its base name, and sets the
// local modification time to the remote one.
func (s *ObjectStore) Download(ctx context.Context, obj Object, dir string) (string, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(obj.Key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", obj.Key, err)
	}
	defer resp.Body.Close()

	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	dest := filepath.Join(dir, obj.Name())
	tmp := dest + ".part"
	f, err := s.fs.Create(tmp)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", tmp, err)
	}
	_, err = io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		s.fs.Remove(tmp)
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	if err := s.fs.Rename(tmp, dest); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", dest, err)
	}
	if !obj.LastModified.IsZero() {
		s.fs.Chtimes(dest, obj.LastModified, obj.LastModified)
	}
	return dest, nil
}

// Sync downloads the newest object matching the first pattern that has any
// match. It returns "" when nothing matched. A local copy with the same
// name and size is reused.
func (s *ObjectStore) Sync(ctx context.Context, dir string, patterns ...string) (string, error) {
	log := logging.Component("Remote")
	for _, pattern := range patterns {
		obj, err := s.FindNewest(ctx, pattern)
		if err != nil {
			return "", err
		}
		if obj == nil {
			continue
		}

		dest := filepath.Join(dir, obj.Name())
		if info, err := s.fs.Stat(dest); err == nil && info.Size() == obj.Size {
			log.Debugf("Up to date: %s", dest)
			return dest, nil
		}

		local, err := s.Download(ctx, *obj, dir)
		if err != nil {
			return "", err
		}
		log.Infof("Downloaded %s (%d bytes)", obj.Key, obj.Size)
		return local, nil
	}
	return "", nil
}
