// Package notify connects analysis runs to AMQP: completed runs are
// announced on a results queue and the worker binary consumes analysis
// requests from a request queue.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	requestQueue string
	resultQueue  string
}

func NewClient(url, exchangeName, requestQueue, resultQueue string) (*Client, error) {
	conn, err := amqp091.Dial(url)
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
		exchangeName: exchangeName,
		requestQueue: requestQueue,
		resultQueue:  resultQueue,
	}
	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queues: %w", err)
	}
	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	for _, queue := range []string{c.requestQueue, c.resultQueue} {
		if _, err := c.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", queue, err)
		}
		// Routing key matches the queue name on a direct exchange.
		if err := c.channel.QueueBind(queue, queue, c.exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue %s: %w", queue, err)
		}
	}
	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// PublishAnalysisDone announces a finished run on the result queue.
func (c *Client) PublishAnalysisDone(ctx context.Context, msg *AnalysisDoneMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, c.resultQueue, body); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	slog.InfoContext(ctx, "Published analysis-done message",
		"summary", msg.SummaryPath,
		"transactions", msg.Transactions,
		"exchange", c.exchangeName,
		"queue", c.resultQueue)
	return nil
}

// PublishAnalyzeRequest enqueues a run request for the worker.
func (c *Client) PublishAnalyzeRequest(ctx context.Context, msg *AnalyzeRequestMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	if err := c.publish(ctx, c.requestQueue, body); err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	slog.InfoContext(ctx, "Published analyze request",
		"input", msg.InputPath,
		"exchange", c.exchangeName,
		"queue", c.requestQueue)
	return nil
}

// ConsumeAnalyzeRequests delivers request messages to handler with manual
// acks. Handler errors requeue the message; malformed payloads are dropped.
func (c *Client) ConsumeAnalyzeRequests(ctx context.Context, handler func(*AnalyzeRequestMessage) error) error {
	msgs, err := c.channel.Consume(
		c.requestQueue,
		"",    // consumer
		false, // auto-ack off, we ack after the run completes
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming analyze requests", "queue", c.requestQueue)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			msg, err := AnalyzeRequestMessageFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal message", "error", err)
				delivery.Nack(false, false)
				continue
			}
			if err := handler(msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle analyze request",
					"error", err,
					"input", msg.InputPath)
				delivery.Nack(false, true)
				continue
			}
			delivery.Ack(false)
			slog.InfoContext(ctx, "Processed analyze request", "input", msg.InputPath)
		}
	}
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
