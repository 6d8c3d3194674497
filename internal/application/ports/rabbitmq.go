package ports

import (
	"context"

	"github.com/rabbitmq/amqp091-go"

	"user-registry-api/internal/infrastructure/mq"
)

// EventEmitter hands a user event over for asynchronous publishing.
// Emit must not block the request.
type EventEmitter interface {
	Emit(e mq.Event)
}

type RabbitMQ interface {
	EventEmitter
	Connect(ctx context.Context, dsn string) error
	Init() error
	PublisherWorker(ctx context.Context)
	GetConn() *amqp091.Connection
}
