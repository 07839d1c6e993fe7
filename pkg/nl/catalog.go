package nl

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/store"

	"gopkg.in/yaml.v3"
)

// CatalogVersion is the schema version of the catalog document.
const CatalogVersion = "1"

// Catalog registers generated sentence data for the embeddings builder.
type Catalog struct {
	Version string                  `yaml:"version"`
	Indexes map[string]CatalogIndex `yaml:"indexes"`
}

// CatalogIndex describes one embeddings index. Paths are relative to the
// directory the sentences were generated into.
type CatalogIndex struct {
	StoreType      string `yaml:"store_type"`
	SourcePath     string `yaml:"source_path"`
	EmbeddingsPath string `yaml:"embeddings_path"`
	Model          string `yaml:"model"`
}

// Relativize expresses target relative to root using forward slashes.
// Both may be local paths or URIs. A target outside root is an error so
// that no absolute location ends up in a persisted catalog.
func Relativize(root, target string) (string, error) {
	r := strings.TrimSuffix(filepath.ToSlash(root), "/")
	t := strings.TrimSuffix(filepath.ToSlash(target), "/")

	if t == r {
		return ".", nil
	}
	if rel, ok := strings.CutPrefix(t, r+"/"); ok && rel != "" {
		return rel, nil
	}
	return "", fmt.Errorf("path %s is outside of %s", target, root)
}

// EncodeCatalog renders the catalog as YAML with two space indentation.
func EncodeCatalog(c Catalog) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) buildCatalog(root store.Dir, sentences store.File, embeddings store.Dir) (Catalog, error) {
	sourcePath, err := Relativize(root.Path(), sentences.Path())
	if err != nil {
		return Catalog{}, err
	}
	embeddingsPath, err := Relativize(root.Path(), embeddings.Path())
	if err != nil {
		return Catalog{}, err
	}

	return Catalog{
		Version: CatalogVersion,
		Indexes: map[string]CatalogIndex{
			g.indexName: {
				StoreType:      g.storeType,
				SourcePath:     sourcePath,
				EmbeddingsPath: embeddingsPath,
				Model:          g.embeddingsModel,
			},
		},
	}, nil
}

func (g *Generator) writeCatalog(ctx context.Context, root store.Dir, sentences store.File) error {
	embeddings, err := root.Dir(ctx, EmbeddingsDirName)
	if err != nil {
		return fmt.Errorf("failed to create embeddings dir: %w", err)
	}

	catalog, err := g.buildCatalog(root, sentences, embeddings)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	content, err := EncodeCatalog(catalog)
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	catalogFile, err := embeddings.File(CatalogFileName)
	if err != nil {
		return err
	}
	if err := catalogFile.Write(ctx, content); err != nil {
		return fmt.Errorf("failed to write catalog: %w", err)
	}

	logger.Info("[NL] Wrote catalog", "index", g.indexName, "path", catalogFile.Path())
	return nil
}
