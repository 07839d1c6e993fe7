// Package nl turns statistical variable, topic and peer group triples into
// the inputs of a natural-language search index: a sentence table, the
// catalog that registers it and the topic membership cache.
package nl

const (
	SentencesFileName  = "sentences.csv"
	EmbeddingsDirName  = "embeddings"
	CatalogFileName    = "custom_catalog.yaml"
	TopicCacheFileName = "custom_dc_topic_cache.json"

	DefaultIndexName       = "user_all_minilm_mem"
	DefaultEmbeddingsModel = "ft-final-v20230717230459-all-MiniLM-L6-v2"
	DefaultStoreType       = "MEMORY"
)

// Recorder receives counts from a generation run. Implementations must be
// safe to call from a single goroutine; the generator never calls them
// concurrently.
type Recorder interface {
	SentencesWritten(n int)
	EntitySkipped(reason string)
	TopicsWritten(n int)
}

type noopRecorder struct{}

func (noopRecorder) SentencesWritten(int)  {}
func (noopRecorder) EntitySkipped(string) {}
func (noopRecorder) TopicsWritten(int)    {}

// Generator writes the sentence table, catalog and topic cache. A zero
// value is not usable; create one with NewGenerator.
type Generator struct {
	indexName       string
	embeddingsModel string
	storeType       string
	recorder        Recorder
}

// NewGeneratorParams configures a Generator. Empty fields fall back to the
// Default* constants and a no-op recorder.
type NewGeneratorParams struct {
	IndexName       string
	EmbeddingsModel string
	StoreType       string
	Recorder        Recorder
}

func NewGenerator(params NewGeneratorParams) *Generator {
	g := &Generator{
		indexName:       params.IndexName,
		embeddingsModel: params.EmbeddingsModel,
		storeType:       params.StoreType,
		recorder:        params.Recorder,
	}
	if g.indexName == "" {
		g.indexName = DefaultIndexName
	}
	if g.embeddingsModel == "" {
		g.embeddingsModel = DefaultEmbeddingsModel
	}
	if g.storeType == "" {
		g.storeType = DefaultStoreType
	}
	if g.recorder == nil {
		g.recorder = noopRecorder{}
	}
	return g
}
