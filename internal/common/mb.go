package common

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type BindingKey string

type MessageProducer interface {
	Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error
}

type MessageConsumer interface {
	Consume(queue Queue, consumer string) (<-chan amqp.Delivery, error)
}

const (
	BloglistExchange Exchange = "bloglist_exchange"
	ActivityQueue    Queue    = "activity_queue"

	UserCreatedKey BindingKey = "user.created"
	BlogCreatedKey BindingKey = "blog.created"
	BlogDeletedKey BindingKey = "blog.deleted"
)

// Event is the body of every message published on BloglistExchange.
type Event struct {
	Type     BindingKey `json:"type"`
	UserID   string     `json:"user_id"`
	Username string     `json:"username,omitempty"`
	BlogID   string     `json:"blog_id,omitempty"`
	Title    string     `json:"title,omitempty"`
	At       time.Time  `json:"at"`
}

// PublishEvent stamps ev with key and the current time and publishes it.
func PublishEvent(ctx context.Context, p MessageProducer, key BindingKey, ev Event) error {
	ev.Type = key
	ev.At = time.Now().UTC()

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	return p.Publish(ctx, body, key, BloglistExchange)
}

// NopProducer drops every message. It stands in for the broker when none is configured.
type NopProducer struct{}

func (NopProducer) Publish(context.Context, []byte, BindingKey, Exchange) error {
	return nil
}

type MessageBroker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewMessageBroker(URI string) (*MessageBroker, error) {
	conn, ch, err := connectAMQP(URI)
	if err != nil {
		return nil, err
	}

	return &MessageBroker{
		conn: conn,
		ch:   ch,
	}, nil
}

func connectAMQP(URI string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(URI)
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("could not open channel: %w", err)
	}

	return conn, ch, nil
}

// Close closes the connection and channel of the message broker.
func (mb *MessageBroker) Close() error {
	err := mb.ch.Close()
	if err != nil {
		return err
	}

	err = mb.conn.Close()
	if err != nil {
		return err
	}

	return nil
}

// SetupBloglistExchange declares the exchange and binds the activity queue to every event key.
func SetupBloglistExchange(mb *MessageBroker) error {
	err := mb.ch.ExchangeDeclare(string(BloglistExchange), "direct", true, false, false, false, nil)
	if err != nil {
		return err
	}

	_, err = mb.ch.QueueDeclare(string(ActivityQueue), true, false, false, false, nil)
	if err != nil {
		return err
	}

	for _, key := range []BindingKey{UserCreatedKey, BlogCreatedKey, BlogDeletedKey} {
		err = mb.ch.QueueBind(string(ActivityQueue), string(key), string(BloglistExchange), false, nil)
		if err != nil {
			return err
		}
	}

	return nil
}

func (mb *MessageBroker) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	err := mb.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        msg,
	})
	if err != nil {
		return fmt.Errorf("could not publish message: %w", err)
	}

	return nil
}

func (mb *MessageBroker) Consume(queue Queue, consumer string) (<-chan amqp.Delivery, error) {
	msgs, err := mb.ch.Consume(string(queue), consumer, false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("could not consume message: %w", err)
	}

	return msgs, nil
}
