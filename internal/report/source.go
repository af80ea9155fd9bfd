package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ignite/ppc-optimizer/internal/dataset"
)

// ObjectAPI is the subset of the S3 client a Source uses.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, opts ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Source loads and stores files by location: a local path or an
// s3://bucket/key URI. The S3 client is created on first use.
type Source struct {
	region  string
	profile string

	once   sync.Once
	client ObjectAPI
	err    error
}

// NewSource returns a source that resolves AWS credentials from the default
// chain, optionally pinned to a region and shared profile.
func NewSource(region, profile string) *Source {
	return &Source{region: region, profile: profile}
}

// NewSourceWithClient returns a source backed by an existing client.
func NewSourceWithClient(client ObjectAPI) *Source {
	s := &Source{client: client}
	s.once.Do(func() {})
	return s
}

func (s *Source) s3Client(ctx context.Context) (ObjectAPI, error) {
	s.once.Do(func() {
		var opts []func(*config.LoadOptions) error
		if s.region != "" {
			opts = append(opts, config.WithRegion(s.region))
		}
		if s.profile != "" {
			opts = append(opts, config.WithSharedConfigProfile(s.profile))
		}
		cfg, err := config.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			s.err = fmt.Errorf("loading AWS config: %w", err)
			return
		}
		s.client = s3.NewFromConfig(cfg)
	})
	return s.client, s.err
}

// ParseS3URI splits s3://bucket/key. ok is false for anything else.
func ParseS3URI(location string) (bucket, key string, ok bool) {
	rest, found := strings.CutPrefix(location, "s3://")
	if !found {
		return "", "", false
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", false
	}
	return bucket, key, true
}

// Open reads the file at location and returns its bytes and base name.
func (s *Source) Open(ctx context.Context, location string) ([]byte, string, error) {
	bucket, key, ok := ParseS3URI(location)
	if !ok {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, "", fmt.Errorf("reading %s: %w", location, err)
		}
		return data, filepath.Base(location), nil
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return nil, "", err
	}
	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("getting s3 object %s: %w", location, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading s3 object %s: %w", location, err)
	}
	return data, path.Base(key), nil
}

// Load opens location and parses it as a table.
func (s *Source) Load(ctx context.Context, location string) (*dataset.Table, error) {
	data, name, err := s.Open(ctx, location)
	if err != nil {
		return nil, err
	}
	return Read(data, name)
}

// Save writes data to location.
func (s *Source) Save(ctx context.Context, location string, data []byte, contentType string) error {
	bucket, key, ok := ParseS3URI(location)
	if !ok {
		if err := os.WriteFile(location, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", location, err)
		}
		return nil
	}

	client, err := s.s3Client(ctx)
	if err != nil {
		return err
	}
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("putting s3 object %s: %w", location, err)
	}
	return nil
}
