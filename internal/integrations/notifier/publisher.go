package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Opener открывает новый канал к брокеру
type Opener func() (Channel, error)

// Publisher публикует уведомления в durable очередь RabbitMQ.
// Канал работает в режиме подтверждений: Send возвращает nil только после ack брокера.
// Закрытый брокером канал (рестарт, channel exception) переоткрывается при следующем Send.
type Publisher struct {
	mu      sync.Mutex
	open    Opener
	ch      Channel
	closers []func() error
	queue   string
	timeout time.Duration
	log     Logger
}

// connector держит соединение и передиалится, если брокер его закрыл
type connector struct {
	mu   sync.Mutex
	url  string
	conn *amqp.Connection
	log  Logger
}

func (c *connector) channel() (Channel, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			return nil, fmt.Errorf("dial: %w", err)
		}
		go watchClose(conn.NotifyClose(make(chan *amqp.Error, 1)), "connection", c.log)
		c.conn = conn
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return ch, nil
}

func (c *connector) close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.conn.IsClosed() {
		return nil
	}
	return c.conn.Close()
}

// watchClose логирует причину закрытия; при штатном Close брокер присылает nil
func watchClose(notify chan *amqp.Error, what string, log Logger) {
	if reason, ok := <-notify; ok && reason != nil {
		log.Error("notifier: %s closed by broker: %v", what, reason)
	}
}

// NewPublisher подключается к брокеру и объявляет очередь
func NewPublisher(url, queue string, timeout time.Duration, log Logger) (*Publisher, error) {
	c := &connector{url: url, log: log}

	p, err := newPublisher(c.channel, queue, timeout, log)
	if err != nil {
		_ = c.close()
		return nil, err
	}
	p.closers = append(p.closers, c.close)

	return p, nil
}

func newPublisher(open Opener, queue string, timeout time.Duration, log Logger) (*Publisher, error) {
	p := &Publisher{
		open:    open,
		queue:   queue,
		timeout: timeout,
		log:     log,
	}

	if _, err := p.channel(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	return p, nil
}

// channel возвращает рабочий канал, при необходимости открывая новый. Вызывается под p.mu.
func (p *Publisher) channel() (Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	if p.ch != nil {
		p.log.Info("notifier: channel is closed, reopening")
		p.ch = nil
	}

	ch, err := p.open()
	if err != nil {
		return nil, err
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	go watchClose(ch.NotifyClose(make(chan *amqp.Error, 1)), "channel", p.log)

	p.ch = ch
	return ch, nil
}

// drop забывает канал, чтобы следующий Send открыл новый. Вызывается под p.mu.
func (p *Publisher) drop(ch Channel) {
	if p.ch != ch {
		return
	}
	_ = ch.Close()
	p.ch = nil
}

// Send публикует сообщение и ждёт подтверждения брокера не дольше timeout
func (p *Publisher) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrInternal, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	confirmation, err := p.publish(ctx, msg, body)
	if err != nil {
		p.log.Error("notifier: publish booking_id=%d failed: %v", msg.BookingID, err)
		return fmt.Errorf("%w: booking_id=%d: %v", ErrDelivery, msg.BookingID, err)
	}

	// nil - канал не в режиме подтверждений.
	// Подтверждение ждём без блокировки: остальные Send не стоят в очереди за одним ack.
	if confirmation != nil {
		acked, err := confirmation.WaitContext(ctx)
		if err != nil {
			p.log.Error("notifier: confirmation for booking_id=%d not received: %v", msg.BookingID, err)
			return fmt.Errorf("%w: booking_id=%d: wait confirmation: %v", ErrDelivery, msg.BookingID, err)
		}
		if !acked {
			return fmt.Errorf("%w: booking_id=%d", ErrNotAcked, msg.BookingID)
		}
	}

	p.log.Info("notifier: booking_id=%d notification queued for %s", msg.BookingID, msg.To)
	return nil
}

func (p *Publisher) publish(ctx context.Context, msg Message, body []byte) (*amqp.DeferredConfirmation, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return nil, err
	}

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(ctx,
		"",      // default exchange
		p.queue, // routing key = имя очереди
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			MessageId:    msg.ConfirmationCode,
			Body:         body,
		},
	)
	if err != nil {
		if errors.Is(err, amqp.ErrClosed) || ch.IsClosed() {
			p.drop(ch)
		}
		return nil, err
	}

	return confirmation, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.ch != nil {
		err = p.ch.Close()
		p.ch = nil
	}
	for _, closeFn := range p.closers {
		if closeErr := closeFn(); closeErr != nil && err == nil {
			err = closeErr
		}
	}
	return err
}

// LogSender пишет уведомления в лог вместо брокера (RabbitMQ выключен)
type LogSender struct {
	log Logger
}

func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, msg Message) error {
	s.log.Info("notifier: to=%s subject=%q code=%s", msg.To, msg.Subject, msg.ConfirmationCode)
	return nil
}
