// Package storage opens output stores from a URI: "s3://bucket/prefix" for
// S3, anything else is a local path.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/store"
	"github.com/OFFIS-RIT/statnl/pkg/store/fs"
	s3store "github.com/OFFIS-RIT/statnl/pkg/store/s3"
)

// IsRemote reports whether uri points at an object store.
func IsRemote(uri string) bool {
	return strings.HasPrefix(uri, "s3://")
}

// Open returns the store for uri.
func Open(ctx context.Context, uri string) (store.Store, error) {
	if uri == "" {
		return nil, fmt.Errorf("empty store uri")
	}

	if !IsRemote(uri) {
		logger.Debug("[Storage] Opening local store", "path", uri)
		return fs.Open(uri)
	}

	bucket, prefix, err := s3store.ParseURI(uri)
	if err != nil {
		return nil, err
	}
	client, err := NewS3Client(ctx)
	if err != nil {
		return nil, err
	}

	logger.Debug("[Storage] Opening s3 store", "bucket", bucket, "prefix", prefix)
	return s3store.NewStore(client, s3store.NewStoreParams{
		Bucket:   bucket,
		Prefix:   prefix,
		MaxTries: s3store.DefaultMaxTries,
		Backoff:  s3store.DefaultBackoff,
	})
}
