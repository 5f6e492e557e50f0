package notifier

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel подмножество методов *amqp.Channel, используемых издателем
type Channel interface {
	Confirm(noWait bool) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithDeferredConfirmWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) (*amqp.DeferredConfirmation, error)
	NotifyClose(receiver chan *amqp.Error) chan *amqp.Error
	IsClosed() bool
	Close() error
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
