package common

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	mock.Mock
}

func (m *mockProducer) Publish(ctx context.Context, msg []byte, key BindingKey, exchange Exchange) error {
	args := m.Called(msg, key, exchange)
	return args.Error(0)
}

func TestPublishEvent(t *testing.T) {
	p := new(mockProducer)

	var body []byte
	p.On("Publish", mock.Anything, BlogCreatedKey, BloglistExchange).
		Run(func(args mock.Arguments) { body = args.Get(0).([]byte) }).
		Return(nil)

	err := PublishEvent(context.Background(), p, BlogCreatedKey, Event{UserID: "u1", BlogID: "b1", Title: "Go"})
	require.NoError(t, err)
	p.AssertExpectations(t)

	var ev Event
	require.NoError(t, json.Unmarshal(body, &ev))
	assert.Equal(t, BlogCreatedKey, ev.Type)
	assert.Equal(t, "u1", ev.UserID)
	assert.Equal(t, "b1", ev.BlogID)
	assert.Equal(t, "Go", ev.Title)
	assert.False(t, ev.At.IsZero())
}

func TestNopProducer(t *testing.T) {
	err := PublishEvent(context.Background(), NopProducer{}, UserCreatedKey, Event{UserID: "u1"})
	assert.NoError(t, err)
}

func TestMessageBrokerRoundTrip(t *testing.T) {
	connURL := TestRabbitMQ(t)

	mb, err := NewMessageBroker(connURL)
	require.NoError(t, err)
	t.Cleanup(func() { mb.Close() })

	require.NoError(t, SetupBloglistExchange(mb))

	msgs, err := mb.Consume(ActivityQueue, "test")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = PublishEvent(ctx, mb, UserCreatedKey, Event{UserID: "u1", Username: "root"})
	require.NoError(t, err)

	select {
	case d := <-msgs:
		var ev Event
		require.NoError(t, json.Unmarshal(d.Body, &ev))
		assert.Equal(t, UserCreatedKey, ev.Type)
		assert.Equal(t, "root", ev.Username)
		assert.NoError(t, d.Ack(false))
	case <-ctx.Done():
		t.Fatal("timed out waiting for the event")
	}
}
