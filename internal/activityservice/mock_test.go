package activityservice

import (
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/bloglist/internal/common"
)

type MockMessageConsumer struct {
	mock.Mock
}

func (m *MockMessageConsumer) Consume(queue common.Queue, consumer string) (<-chan amqp.Delivery, error) {
	args := m.Called(queue, consumer)
	msgs, _ := args.Get(0).(<-chan amqp.Delivery)
	return msgs, args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) RecordEvent(eventType string) {
	m.Called(eventType)
}

type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.Called(msg)
}

func (m *MockLogger) Info(msg string, args ...any) {
	m.Called(msg)
}

// deliveries returns a closed channel holding bodies in order.
func deliveries(bodies ...string) <-chan amqp.Delivery {
	ch := make(chan amqp.Delivery, len(bodies))
	for _, b := range bodies {
		ch <- amqp.Delivery{Body: []byte(b)}
	}
	close(ch)
	return ch
}
