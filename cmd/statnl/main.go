// Package main provides the statnl command line tool. It generates the
// sentence table, catalog and topic cache for a natural-language search
// index from triple files.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/OFFIS-RIT/statnl/internal/config"
	"github.com/OFFIS-RIT/statnl/internal/input"
	"github.com/OFFIS-RIT/statnl/internal/metrics"
	"github.com/OFFIS-RIT/statnl/internal/pipeline"
	"github.com/OFFIS-RIT/statnl/internal/util"
	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/logger/console"
	"github.com/OFFIS-RIT/statnl/pkg/nl"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "statnl"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type globalOptions struct {
	debug           bool
	metricsFile     string
	indexName       string
	embeddingsModel string
	storeType       string
}

func rootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Generate natural-language search inputs from statistical triples",
		Long: `statnl reads statistical variable, topic and peer group triples from CSV or
N-Quads files and writes the inputs of a natural-language search index:

  sentences.csv                     one row per searchable sentence
  embeddings/custom_catalog.yaml    the index catalog
  custom_dc_topic_cache.json        topic and peer group members

Inputs and output may be local paths or s3:// URIs.`,
		SilenceUsage: true,
	}

	flags := cmd.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging (env DEBUG)")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile (env NL_METRICS_FILE)")
	flags.StringVar(&opts.indexName, "index-name", "", "catalog index name (env NL_INDEX_NAME)")
	flags.StringVar(&opts.embeddingsModel, "model", "", "embeddings model recorded in the catalog (env NL_EMBEDDINGS_MODEL)")
	flags.StringVar(&opts.storeType, "store-type", "", "catalog store type (env NL_STORE_TYPE)")

	cmd.AddCommand(
		stageCmd(opts, "sentences", "Write sentences.csv and the catalog", pipeline.StageSentences),
		stageCmd(opts, "topics", "Write the topic cache", pipeline.StageTopics),
		stageCmd(opts, "all", "Run every stage", pipeline.AllStages...),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func stageCmd(opts *globalOptions, use, short string, stages ...pipeline.Stage) *cobra.Command {
	var (
		inputs []string
		output string
	)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Example: fmt.Sprintf(`  %[1]s %[2]s --input 'data/**/*.csv' --output out/nl
  %[1]s %[2]s --input s3://bucket/triples.nq --output s3://bucket/nl`, appName, use),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cmd, opts, inputs, output, stages)
		},
	}

	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "input file, glob or s3:// URI (repeatable)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory or s3:// URI")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func run(ctx context.Context, cmd *cobra.Command, opts *globalOptions, inputs []string, output string, stages []pipeline.Stage) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlags(cmd, opts, &cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  cfg.Debug,
		Prefix: appName,
		Output: cmd.ErrOrStderr(),
	}))

	recorder := metrics.NewRecorder()
	err = pipeline.Run(ctx, pipeline.RunParams{
		Inputs:    inputs,
		Output:    output,
		Stages:    stages,
		Generator: nl.NewGenerator(cfg.GeneratorParams(recorder)),
		Loader:    input.DefaultLoader{ParallelFiles: cfg.ParallelFiles},
		Observer:  recorder,
	})
	if err == nil {
		recorder.MarkSuccess(time.Now())
	}

	if cfg.MetricsFile != "" {
		if writeErr := recorder.WriteTextfile(cfg.MetricsFile); writeErr != nil {
			logger.Error("[CLI] Failed to write metrics", "path", cfg.MetricsFile, "err", writeErr)
		}
	}
	return err
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, opts *globalOptions, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("metrics-file") {
		cfg.MetricsFile = opts.metricsFile
	}
	if flags.Changed("index-name") {
		cfg.IndexName = opts.indexName
	}
	if flags.Changed("model") {
		cfg.EmbeddingsModel = opts.embeddingsModel
	}
	if flags.Changed("store-type") {
		cfg.StoreType = opts.storeType
	}
}
