// Package input resolves input patterns to triple files and loads them.
package input

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/OFFIS-RIT/statnl/internal/storage"
	"github.com/OFFIS-RIT/statnl/pkg/loader"
	"github.com/OFFIS-RIT/statnl/pkg/loader/csv"
	loaderio "github.com/OFFIS-RIT/statnl/pkg/loader/io"
	"github.com/OFFIS-RIT/statnl/pkg/loader/nquads"
	loaders3 "github.com/OFFIS-RIT/statnl/pkg/loader/s3"
	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

const DefaultParallelFiles = 4

// Loader reads triples from local files and S3 objects.
type Loader struct {
	local         loader.FileLoader
	remote        loader.FileLoader
	parallelFiles int
}

// NewLoaderParams configures a Loader. Remote may be nil when no s3://
// inputs are expected.
type NewLoaderParams struct {
	Local         loader.FileLoader
	Remote        loader.FileLoader
	ParallelFiles int
}

func NewLoader(params NewLoaderParams) *Loader {
	l := &Loader{
		local:         params.Local,
		remote:        params.Remote,
		parallelFiles: params.ParallelFiles,
	}
	if l.local == nil {
		l.local = loaderio.NewIOFileLoader()
	}
	if l.parallelFiles <= 0 {
		l.parallelFiles = DefaultParallelFiles
	}
	return l
}

// Load reads every file matched by patterns with the default loaders and
// DefaultParallelFiles.
func Load(ctx context.Context, patterns []string) ([]triple.Triple, error) {
	return DefaultLoader{}.Load(ctx, patterns)
}

// DefaultLoader reads local files from disk and s3:// URIs through an S3
// client created from the environment, only when one is needed.
type DefaultLoader struct {
	ParallelFiles int
}

func (d DefaultLoader) Load(ctx context.Context, patterns []string) ([]triple.Triple, error) {
	params := NewLoaderParams{ParallelFiles: d.ParallelFiles}
	if slices.ContainsFunc(patterns, storage.IsRemote) {
		client, err := storage.NewS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create s3 client: %w", err)
		}
		params.Remote = loaders3.NewS3FileLoaderWithClient(client)
	}
	return NewLoader(params).Load(ctx, patterns)
}

// Resolve expands patterns into triple files. Local patterns support
// doublestar globs and their matches are sorted; s3:// URIs name exactly
// one object. A file matched by several patterns is only returned once.
func (l *Loader) Resolve(patterns []string) ([]loader.TripleFile, error) {
	if len(patterns) == 0 {
		return nil, fmt.Errorf("no input given")
	}

	var files []loader.TripleFile
	seen := make(map[string]struct{})
	for _, pattern := range patterns {
		paths, fileLoader, err := l.expand(pattern)
		if err != nil {
			return nil, err
		}

		for _, p := range paths {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}

			format, err := loader.DetectFormat(p)
			if err != nil {
				return nil, err
			}
			file, err := loader.NewTripleFile(loader.NewTripleFileParams{
				Path:   p,
				Format: format,
				Loader: fileLoader,
				Parser: parserFor(format),
			})
			if err != nil {
				return nil, err
			}
			files = append(files, file)
		}
	}

	return files, nil
}

func (l *Loader) expand(pattern string) ([]string, loader.FileLoader, error) {
	if storage.IsRemote(pattern) {
		if l.remote == nil {
			return nil, nil, fmt.Errorf("no s3 loader configured for %s", pattern)
		}
		return []string{pattern}, l.remote, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob error: %w", err)
	}

	var paths []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		paths = append(paths, match)
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("no files match pattern: %s", pattern)
	}

	slices.Sort(paths)
	return paths, l.local, nil
}

func parserFor(format loader.Format) loader.TripleParser {
	if format == loader.FormatNQuads {
		return nquads.NewNQuadsTripleParser()
	}
	return csv.NewCSVTripleParser()
}

// Load resolves patterns and reads the files in parallel. Triples are
// returned in pattern order, then file order, then file content order.
func (l *Loader) Load(ctx context.Context, patterns []string) ([]triple.Triple, error) {
	files, err := l.Resolve(patterns)
	if err != nil {
		return nil, err
	}

	logger.Info("[Input] Loading triples", "files", len(files))

	results := make([][]triple.Triple, len(files))
	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(l.parallelFiles)

	for i, file := range files {
		i, file := i, file
		eg.Go(func() error {
			triples, err := file.GetTriples(gCtx)
			if err != nil {
				return err
			}
			logger.Debug("[Input] Loaded file", "path", file.Path, "triples", len(triples))
			results[i] = triples
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	triples := make([]triple.Triple, 0, total)
	for _, r := range results {
		triples = append(triples, r...)
	}

	logger.Info("[Input] Loaded triples", "files", len(files), "triples", len(triples))
	return triples, nil
}
