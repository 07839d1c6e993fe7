// Package config reads the runtime configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator"

	"github.com/OFFIS-RIT/statnl/internal/util"
	"github.com/OFFIS-RIT/statnl/pkg/nl"
)

type Config struct {
	Debug bool

	IndexName       string `validate:"required,max=128"`
	EmbeddingsModel string `validate:"required"`
	StoreType       string `validate:"required"`

	MetricsFile   string
	ParallelFiles int `validate:"min=1,max=64"`
	// Messages the worker processes at the same time.
	Workers int `validate:"min=1,max=64"`

	RabbitMQ RabbitMQConfig
}

type RabbitMQConfig struct {
	User     string
	Password string
	Host     string `validate:"required"`
	Port     int    `validate:"min=1,max=65535"`
}

// URL returns the AMQP connection URL.
func (c RabbitMQConfig) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/",
	}
	return u.String()
}

// Load reads the configuration from the environment and validates it.
// LoadEnv should have been called before so that .env values are visible.
func Load() (Config, error) {
	cfg := Config{
		Debug:           util.GetEnvBool("DEBUG", false),
		IndexName:       util.GetEnvString("NL_INDEX_NAME", nl.DefaultIndexName),
		EmbeddingsModel: util.GetEnvString("NL_EMBEDDINGS_MODEL", nl.DefaultEmbeddingsModel),
		StoreType:       util.GetEnvString("NL_STORE_TYPE", nl.DefaultStoreType),
		MetricsFile:     util.GetEnv("NL_METRICS_FILE"),
		ParallelFiles:   util.GetEnvInt("NL_PARALLEL_FILES", 4),
		Workers:         util.GetEnvInt("NL_WORKERS", 4),
		RabbitMQ: RabbitMQConfig{
			User:     util.GetEnvString("RABBITMQ_USER", "guest"),
			Password: util.GetEnvString("RABBITMQ_PASSWORD", "guest"),
			Host:     util.GetEnvString("RABBITMQ_HOST", "localhost"),
			Port:     util.GetEnvInt("RABBITMQ_PORT", 5672),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// GeneratorParams maps the configuration onto the generator settings.
func (c Config) GeneratorParams(recorder nl.Recorder) nl.NewGeneratorParams {
	return nl.NewGeneratorParams{
		IndexName:       c.IndexName,
		EmbeddingsModel: c.EmbeddingsModel,
		StoreType:       c.StoreType,
		Recorder:        recorder,
	}
}
