// Package loader reads triple files from local disk or object storage and
// parses them into triples.
package loader

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatNQuads Format = "nquads"
)

// DetectFormat derives the triple format from the file extension.
func DetectFormat(filePath string) (Format, error) {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".csv":
		return FormatCSV, nil
	case ".nq", ".nquads":
		return FormatNQuads, nil
	}
	return "", fmt.Errorf("unsupported triple file %q: expected .csv, .nq or .nquads", filePath)
}

// TripleFile is a single input file. Loader fetches its raw bytes and
// Parser turns them into triples.
type TripleFile struct {
	Path   string
	Format Format
	Loader FileLoader
	Parser TripleParser
}

// NewTripleFileParams defines the input parameters for creating a new
// TripleFile. When Format is empty it is detected from Path.
type NewTripleFileParams struct {
	Path   string
	Format Format
	Loader FileLoader
	Parser TripleParser
}

func NewTripleFile(params NewTripleFileParams) (TripleFile, error) {
	format := params.Format
	if format == "" {
		detected, err := DetectFormat(params.Path)
		if err != nil {
			return TripleFile{}, err
		}
		format = detected
	}
	if params.Loader == nil || params.Parser == nil {
		return TripleFile{}, fmt.Errorf("triple file %q needs a loader and a parser", params.Path)
	}

	return TripleFile{
		Path:   params.Path,
		Format: format,
		Loader: params.Loader,
		Parser: params.Parser,
	}, nil
}

// GetTriples loads the file content and parses it.
//
// Example:
//
//	triples, err := file.GetTriples(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
func (f *TripleFile) GetTriples(ctx context.Context) ([]triple.Triple, error) {
	content, err := f.Loader.GetFileContent(ctx, *f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.Path, err)
	}

	triples, err := f.Parser.ParseTriples(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.Path, err)
	}
	return triples, nil
}

// FileLoader fetches the raw content of a TripleFile. Implementations may
// read from disk, object storage or other sources.
type FileLoader interface {
	GetFileContent(ctx context.Context, file TripleFile) ([]byte, error)
}

// TripleParser turns raw file content into triples.
type TripleParser interface {
	ParseTriples(content []byte) ([]triple.Triple, error)
}

// CacheKey generates the cache key for a TripleFile.
func CacheKey(file TripleFile) string {
	return string(file.Format) + ":" + file.Path
}
