// Package pipeline wires loading, filtering and generation into one run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/OFFIS-RIT/statnl/internal/input"
	"github.com/OFFIS-RIT/statnl/internal/storage"
	"github.com/OFFIS-RIT/statnl/internal/timing"
	"github.com/OFFIS-RIT/statnl/pkg/leaselock"
	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/nl"
	"github.com/OFFIS-RIT/statnl/pkg/store"
	"github.com/OFFIS-RIT/statnl/pkg/triple"
)

type Stage string

const (
	StageSentences Stage = "sentences"
	StageTopics    Stage = "topics"
)

// AllStages lists every stage in execution order.
var AllStages = []Stage{StageSentences, StageTopics}

// ParseStages validates stage names. An empty list and "all" select every
// stage. The result always follows execution order.
func ParseStages(names []string) ([]Stage, error) {
	if len(names) == 0 {
		return AllStages, nil
	}

	selected := make(map[Stage]bool)
	for _, name := range names {
		if name == "all" {
			return AllStages, nil
		}
		stage := Stage(name)
		if !slices.Contains(AllStages, stage) {
			return nil, fmt.Errorf("unknown stage %q", name)
		}
		selected[stage] = true
	}

	var stages []Stage
	for _, stage := range AllStages {
		if selected[stage] {
			stages = append(stages, stage)
		}
	}
	return stages, nil
}

// TripleLoader loads the triples behind a list of input patterns.
type TripleLoader interface {
	Load(ctx context.Context, patterns []string) ([]triple.Triple, error)
}

type TripleLoaderFunc func(ctx context.Context, patterns []string) ([]triple.Triple, error)

func (f TripleLoaderFunc) Load(ctx context.Context, patterns []string) ([]triple.Triple, error) {
	return f(ctx, patterns)
}

// RunParams configures a single run. Loader, OpenStore, Observer and Locker
// are optional; by default inputs are read with input.Load and the output
// is opened with storage.Open. With a Locker, runs against the same output
// wait for each other.
type RunParams struct {
	Inputs    []string
	Output    string
	Stages    []Stage
	Generator *nl.Generator

	Loader    TripleLoader
	OpenStore func(ctx context.Context, uri string) (store.Store, error)
	Observer  timing.Observer
	Locker    *leaselock.Client
}

// Run loads the inputs once and then executes the selected stages one
// after another against the output directory. The store is closed before
// Run returns.
func Run(ctx context.Context, params RunParams) (err error) {
	if params.Generator == nil {
		return fmt.Errorf("no generator configured")
	}
	if params.Output == "" {
		return fmt.Errorf("no output given")
	}
	stages := params.Stages
	if len(stages) == 0 {
		stages = AllStages
	}
	tripleLoader := params.Loader
	if tripleLoader == nil {
		tripleLoader = TripleLoaderFunc(input.Load)
	}
	openStore := params.OpenStore
	if openStore == nil {
		openStore = storage.Open
	}

	var triples []triple.Triple
	err = timing.Stage("load", params.Observer, func() error {
		var loadErr error
		triples, loadErr = tripleLoader.Load(ctx, params.Inputs)
		return loadErr
	})
	if err != nil {
		return fmt.Errorf("failed to load triples: %w", err)
	}

	if params.Locker != nil {
		lease, err := params.Locker.Acquire(ctx, "output:"+params.Output, leaselock.Options{Wait: true})
		if err != nil {
			return fmt.Errorf("failed to lock output: %w", err)
		}
		defer func() {
			_ = lease.Release(context.Background())
		}()
		ctx = lease.Context
	}

	s, err := openStore(ctx, params.Output)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close output: %w", closeErr))
		}
	}()

	dir, err := s.AsDir()
	if err != nil {
		return fmt.Errorf("failed to open output directory: %w", err)
	}

	logger.Info("[Pipeline] Starting run", "triples", len(triples), "output", dir.Path(), "stages", stages)

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := timing.Stage(string(stage), params.Observer, func() error {
			return runStage(ctx, stage, params.Generator, triples, dir)
		})
		if err != nil {
			return fmt.Errorf("stage %s failed: %w", stage, err)
		}
	}

	logger.Info("[Pipeline] Run finished", "output", dir.Path())
	return nil
}

func runStage(ctx context.Context, stage Stage, g *nl.Generator, triples []triple.Triple, dir store.Dir) error {
	switch stage {
	case StageSentences:
		return g.GenerateNLSentences(ctx, triple.WithoutPeerGroups(triples), dir)
	case StageTopics:
		return g.GenerateTopicCache(ctx, triple.WithoutStatVars(triples), dir)
	}
	return fmt.Errorf("unknown stage %q", stage)
}
