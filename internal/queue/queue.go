package queue

import (
	"time"

	"github.com/OFFIS-RIT/statnl/pkg/logger"

	"github.com/rabbitmq/amqp091-go"
)

const (
	GenerateQueue = "nl_queue"

	RetrySuffix      = "_retry"
	DeadLetterSuffix = "_dlq"

	// RetryDelay is how long a failed message waits in the retry queue
	// before it is routed back to its work queue.
	RetryDelay = 10 * time.Second
	MaxRetries = 10
)

// Init connects to RabbitMQ and exits the process on failure.
func Init(url string) *amqp091.Connection {
	conn, err := amqp091.Dial(url)
	if err != nil {
		logger.Fatal("[Queue] Failed to connect to RabbitMQ", "err", err)
	}

	return conn
}

// QueueDeclarer is the subset of *amqp091.Channel used to declare queues.
type QueueDeclarer interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
}

// SetupQueues declares every work queue together with its retry and dead
// letter queue. The retry queue dead-letters expired messages back to the
// work queue.
func SetupQueues(ch QueueDeclarer, queueNames []string) error {
	for _, name := range queueNames {
		_, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		)
		if err != nil {
			return err
		}

		_, err = ch.QueueDeclare(
			name+DeadLetterSuffix,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return err
		}

		_, err = ch.QueueDeclare(
			name+RetrySuffix,
			true,
			false,
			false,
			false,
			amqp091.Table{
				"x-message-ttl":             int32(RetryDelay / time.Millisecond),
				"x-dead-letter-exchange":    "",
				"x-dead-letter-routing-key": name,
			},
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Publisher is the subset of *amqp091.Channel used to publish messages.
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// PublishFIFO publishes data as a persistent message on the default
// exchange.
func PublishFIFO(ch Publisher, queueName string, data []byte) error {
	publishing := amqp091.Publishing{
		ContentType:  "application/json",
		Body:         data,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
	}

	return ch.Publish(
		"",
		queueName,
		false,
		false,
		publishing,
	)
}
