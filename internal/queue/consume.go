package queue

import (
	"context"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
)

// Consume hands deliveries from msgs to workers goroutines and blocks until
// ctx is done or msgs is closed and every running handler has returned.
// The channel prefetch should match workers so that each goroutine has at
// most one unacknowledged message.
func Consume(ctx context.Context, queueName string, msgs <-chan amqp091.Delivery, workers int, handle func(ctx context.Context, msg amqp091.Delivery)) {
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					logger.Debug("[Queue] Stopping consumer", "queue", queueName, "worker", worker)
					return
				case msg, ok := <-msgs:
					if !ok {
						logger.Debug("[Queue] Message channel closed", "queue", queueName, "worker", worker)
						return
					}
					handle(ctx, msg)
				}
			}
		}(i)
	}
	wg.Wait()
}
