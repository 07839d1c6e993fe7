package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/OFFIS-RIT/statnl/internal/config"
	"github.com/OFFIS-RIT/statnl/internal/input"
	"github.com/OFFIS-RIT/statnl/internal/metrics"
	"github.com/OFFIS-RIT/statnl/internal/queue"
	"github.com/OFFIS-RIT/statnl/internal/timing"
	"github.com/OFFIS-RIT/statnl/internal/util"
	"github.com/OFFIS-RIT/statnl/pkg/leaselock"
	"github.com/OFFIS-RIT/statnl/pkg/logger"
	"github.com/OFFIS-RIT/statnl/pkg/logger/console"
	"github.com/OFFIS-RIT/statnl/pkg/nl"
)

func main() {
	util.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// logger
	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug:  util.GetEnvBool("DEBUG", false),
		Prefix: "worker",
	})
	logger.Init(consoleLogger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Invalid configuration", "err", err)
	}

	recorder := metrics.NewRecorder()
	params := queue.ProcessParams{
		Generator: nl.NewGenerator(cfg.GeneratorParams(recorder)),
		Loader:    input.DefaultLoader{ParallelFiles: cfg.ParallelFiles},
		Observer:  recorder,
		// Workers share one lock client, so messages for the same output
		// are processed one after another.
		Locker: leaselock.New(leaselock.NewMemoryBackend()),
	}

	// Init rabbitmq
	conn := queue.Init(cfg.RabbitMQ.URL())
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatal("Failed to open channel", "err", err)
	}
	defer ch.Close()

	if err := queue.SetupQueues(ch, []string{queue.GenerateQueue}); err != nil {
		logger.Fatal("Failed to declare queues", "err", err)
	}

	if err := ch.Qos(cfg.Workers, 0, false); err != nil {
		logger.Fatal("Failed to set QoS", "err", err)
	}

	msgs, err := ch.Consume(
		queue.GenerateQueue,
		queue.GenerateQueue+"_consumer",
		false, // autoAck
		false, // exclusive
		false, // noLocal
		false, // noWait
		nil,   // args
	)
	if err != nil {
		logger.Fatal("Failed to start consuming", "queue", queue.GenerateQueue, "err", err)
	}

	logger.Info("Listening for messages", "queue", queue.GenerateQueue, "workers", cfg.Workers)

	queue.Consume(ctx, queue.GenerateQueue, msgs, cfg.Workers, func(ctx context.Context, msg amqp091.Delivery) {
		startTime := time.Now()
		logger.Info("Received message", "queue", queue.GenerateQueue)

		if err := queue.ProcessGenerateMessage(ctx, params, msg.Body); err != nil {
			logger.Error("Error processing message", "queue", queue.GenerateQueue, "err", err)
			queue.HandleProcessingError(ch, msg, queue.GenerateQueue)
		} else {
			if err := msg.Ack(false); err != nil {
				logger.Error("Failed to ack message", "err", err)
			}
			recorder.MarkSuccess(time.Now())
			logger.Info("Message processed successfully", "queue", queue.GenerateQueue)
		}

		if cfg.MetricsFile != "" {
			if err := recorder.WriteTextfile(cfg.MetricsFile); err != nil {
				logger.Error("Failed to write metrics", "path", cfg.MetricsFile, "err", err)
			}
		}

		logger.Info("Processing time", "duration", timing.FormatDuration(time.Since(startTime)))
	})

	logger.Info("Shutdown complete")
}
