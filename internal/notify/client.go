// Package notify carries outbound email through RabbitMQ.
//
// The API server publishes MailMessage values to a durable queue; a separate
// worker process consumes them and performs SMTP delivery. Keeping delivery
// out of the request path means a slow mail provider cannot slow down the
// HTTP API.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"fintrack/internal/config"
	"fintrack/internal/logger"
)

// publishTimeout bounds a single publish so a broker stall cannot hold a
// request handler indefinitely.
const publishTimeout = 5 * time.Second

// Publisher is the write side of the mail queue as seen by services.
type Publisher interface {
	PublishMail(ctx context.Context, msg *MailMessage) error
}

// Client owns one AMQP connection and channel bound to the mail exchange
// and queue. It is safe to share a single Client across the application.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	log          *logger.Logger
}

// NewClient dials the broker and declares the durable exchange, queue and
// binding. Declarations are idempotent, so server and worker may start in
// any order.
func NewClient(cfg config.Queue, log *logger.Logger) (*Client, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: cfg.Exchange,
		queueName:    cfg.Name,
		log:          log,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishMail publishes one persistent mail message to the queue.
func (c *Client) PublishMail(ctx context.Context, msg *MailMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.log.Debug().Str("to", msg.To).Str("subject", msg.Subject).Msg("queued mail message")

	return nil
}

// ConsumeMail reads mail messages until ctx is cancelled, invoking handler
// for each. A handler error requeues the delivery once; a second failure
// after redelivery drops it, and an undecodable body is dropped outright, so
// a poison message cannot loop forever.
func (c *Client) ConsumeMail(ctx context.Context, handler func(*MailMessage) error) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack (we want manual ack)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	c.log.Info().Str("queue", c.queueName).Msg("started consuming mail messages")

	for {
		select {
		case <-ctx.Done():
			c.log.Info().Err(ctx.Err()).Msg("stopping mail consumption")
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			c.handleDelivery(delivery, handler)
		}
	}
}

// handleDelivery decodes one delivery and decides its fate. The requeue
// budget is a single redelivery: a message that fails its second attempt is
// dropped rather than cycled through the queue indefinitely.
func (c *Client) handleDelivery(delivery amqp091.Delivery, handler func(*MailMessage) error) {
	msg, err := MailMessageFromJSON(delivery.Body)
	if err != nil {
		c.log.Error().Err(err).Msg("failed to unmarshal mail message")
		delivery.Nack(false, false)
		return
	}

	if err := handler(msg); err != nil {
		if delivery.Redelivered {
			c.log.Error().Err(err).Str("to", msg.To).Msg("dropping mail message after redelivery failure")
			delivery.Nack(false, false)
			return
		}
		c.log.Error().Err(err).Str("to", msg.To).Msg("failed to deliver mail message, requeueing")
		delivery.Nack(false, true)
		return
	}

	delivery.Ack(false)
	c.log.Info().Str("to", msg.To).Str("subject", msg.Subject).Msg("delivered mail message")
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
