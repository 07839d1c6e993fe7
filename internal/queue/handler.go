package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/OFFIS-RIT/statnl/internal/pipeline"
	"github.com/OFFIS-RIT/statnl/internal/timing"
	"github.com/OFFIS-RIT/statnl/pkg/leaselock"
	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/nl"
	"github.com/OFFIS-RIT/statnl/pkg/store"
)

// GenerateMsg asks the worker to run the given stages over inputs and write
// the result to output.
type GenerateMsg struct {
	CorrelationID string   `json:"correlation_id"`
	Inputs        []string `json:"inputs" validate:"required,min=1,dive,required"`
	Output        string   `json:"output" validate:"required"`
	Stages        []string `json:"stages" validate:"omitempty,dive,oneof=sentences topics all"`
}

var validate = validator.New()

// ParseGenerateMsg decodes and validates a message body. A missing
// correlation id is generated.
func ParseGenerateMsg(body []byte) (*GenerateMsg, error) {
	data := new(GenerateMsg)
	if err := json.Unmarshal(body, data); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}
	if err := validate.Struct(data); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	if data.CorrelationID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate correlation id: %w", err)
		}
		data.CorrelationID = id
	}
	return data, nil
}

// ProcessParams carries the dependencies of ProcessGenerateMessage. Every
// field except Generator is optional, see pipeline.RunParams.
type ProcessParams struct {
	Generator *nl.Generator
	Loader    pipeline.TripleLoader
	OpenStore func(ctx context.Context, uri string) (store.Store, error)
	Observer  timing.Observer
	Locker    *leaselock.Client
}

// ProcessGenerateMessage handles one nl_queue message.
func ProcessGenerateMessage(ctx context.Context, params ProcessParams, body []byte) error {
	data, err := ParseGenerateMsg(body)
	if err != nil {
		return err
	}

	stages, err := pipeline.ParseStages(data.Stages)
	if err != nil {
		return err
	}

	logger.Info("[Queue] Processing generate message",
		"correlation_id", data.CorrelationID,
		"inputs", len(data.Inputs),
		"output", data.Output,
		"stages", stages,
	)

	err = pipeline.Run(ctx, pipeline.RunParams{
		Inputs:    data.Inputs,
		Output:    data.Output,
		Stages:    stages,
		Generator: params.Generator,
		Loader:    params.Loader,
		OpenStore: params.OpenStore,
		Observer:  params.Observer,
		Locker:    params.Locker,
	})
	if err != nil {
		return fmt.Errorf("correlation %s: %w", data.CorrelationID, err)
	}

	logger.Info("[Queue] Generate message done", "correlation_id", data.CorrelationID)
	return nil
}
