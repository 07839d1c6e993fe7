// Package s3 implements the store interfaces on an S3 compatible bucket.
// Directories are implicit key prefixes.
package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/OFFIS-RIT/statnl/internal/util"
	"github.com/OFFIS-RIT/statnl/pkg/store"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	DefaultMaxTries = 3
	DefaultBackoff  = 200 * time.Millisecond
)

// ObjectAPI is the subset of *s3.Client used by the store.
type ObjectAPI interface {
	GetObject(ctx context.Context, params *awss3.GetObjectInput, optFns ...func(*awss3.Options)) (*awss3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.Options)) (*awss3.PutObjectOutput, error)
}

// NewStoreParams configures a Store. Prefix is the key prefix the store is
// rooted at, without leading or trailing slashes.
type NewStoreParams struct {
	Bucket   string
	Prefix   string
	MaxTries int
	Backoff  time.Duration
}

// Store is an S3 backed store.
type Store struct {
	client   ObjectAPI
	bucket   string
	prefix   string
	maxTries int
	backoff  time.Duration
	closed   atomic.Bool
}

// NewStore creates a store on top of an existing client.
func NewStore(client ObjectAPI, params NewStoreParams) (*Store, error) {
	if params.Bucket == "" {
		return nil, fmt.Errorf("s3 store: bucket is required")
	}
	return &Store{
		client:   client,
		bucket:   params.Bucket,
		prefix:   strings.Trim(params.Prefix, "/"),
		maxTries: params.MaxTries,
		backoff:  params.Backoff,
	}, nil
}

// ParseURI splits "s3://bucket/some/prefix" into bucket and prefix.
func ParseURI(uri string) (bucket string, prefix string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", fmt.Errorf("not an s3 uri: %s", uri)
	}
	bucket, prefix, _ = strings.Cut(rest, "/")
	if bucket == "" {
		return "", "", fmt.Errorf("missing bucket in %s", uri)
	}
	return bucket, strings.Trim(prefix, "/"), nil
}

func (s *Store) uri(key string) string {
	if key == "" {
		return "s3://" + s.bucket
	}
	return "s3://" + s.bucket + "/" + key
}

func (s *Store) AsDir() (store.Dir, error) {
	if s.closed.Load() {
		return nil, store.NewError("open", s.uri(s.prefix), store.ErrClosed)
	}
	return &dir{store: s, key: s.prefix}, nil
}

func (s *Store) AsFile() (store.File, error) {
	if s.closed.Load() {
		return nil, store.NewError("open", s.uri(s.prefix), store.ErrClosed)
	}
	if s.prefix == "" {
		return nil, store.NewError("open", s.uri(s.prefix), fmt.Errorf("bucket root is not a file"))
	}
	return &file{store: s, key: s.prefix}, nil
}

// Close marks the store closed. Objects are uploaded on Write, so there is
// nothing left to flush.
func (s *Store) Close() error {
	s.closed.Store(true)
	return nil
}

type dir struct {
	store *Store
	key   string
}

func (d *dir) Path() string {
	return d.store.uri(d.key)
}

func (d *dir) Dir(ctx context.Context, name string) (store.Dir, error) {
	if d.store.closed.Load() {
		return nil, store.NewError("mkdir", d.Path(), store.ErrClosed)
	}
	cleaned, err := store.CleanName(name)
	if err != nil {
		return nil, store.NewError("mkdir", d.Path(), err)
	}
	return &dir{store: d.store, key: path.Join(d.key, cleaned)}, nil
}

func (d *dir) File(name string) (store.File, error) {
	cleaned, err := store.CleanName(name)
	if err != nil {
		return nil, store.NewError("open", d.Path(), err)
	}
	return &file{store: d.store, key: path.Join(d.key, cleaned)}, nil
}

type file struct {
	store *Store
	key   string
}

func (f *file) Path() string {
	return f.store.uri(f.key)
}

func (f *file) Read(ctx context.Context) ([]byte, error) {
	if f.store.closed.Load() {
		return nil, store.NewError("read", f.Path(), store.ErrClosed)
	}
	data, err := util.RetryWithContext(ctx, f.store.maxTries, f.store.backoff, func(ctx context.Context) ([]byte, error) {
		out, err := f.store.client.GetObject(ctx, &awss3.GetObjectInput{
			Bucket: aws.String(f.store.bucket),
			Key:    aws.String(f.key),
		})
		if err != nil {
			return nil, err
		}
		defer out.Body.Close()

		buf := new(bytes.Buffer)
		if _, err := io.Copy(buf, out.Body); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	})
	if err != nil {
		return nil, store.NewError("read", f.Path(), err)
	}
	return data, nil
}

func (f *file) Write(ctx context.Context, data []byte) error {
	if f.store.closed.Load() {
		return store.NewError("write", f.Path(), store.ErrClosed)
	}
	contentType := mime.TypeByExtension(path.Ext(f.key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	err := util.RetryErrWithContext(ctx, f.store.maxTries, f.store.backoff, func(ctx context.Context) error {
		_, err := f.store.client.PutObject(ctx, &awss3.PutObjectInput{
			Bucket:      aws.String(f.store.bucket),
			Key:         aws.String(f.key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		return err
	})
	return store.NewError("write", f.Path(), err)
}
