package activityservice

import (
	"context"
	"encoding/json"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sushihentaime/bloglist/internal/common"
)

const consumerName = "bloglist-activity"

func NewActivityService(mb common.MessageConsumer, recorder Recorder, logger ActivityLogger) *ActivityService {
	ctx, cancel := context.WithCancel(context.Background())
	return &ActivityService{
		mb:       mb,
		recorder: recorder,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins consuming the activity queue in a background goroutine.
func (s *ActivityService) Start() error {
	msgs, err := s.mb.Consume(common.ActivityQueue, consumerName)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				s.handle(msg)

			case <-s.ctx.Done():
				s.logger.Info("stopping activity consumer due to context cancellation")
				return
			}
		}
	}()

	return nil
}

func (s *ActivityService) handle(msg amqp.Delivery) {
	var ev common.Event

	err := json.Unmarshal(msg.Body, &ev)
	if err != nil {
		s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
		// a malformed body will never decode, so do not requeue it
		_ = msg.Nack(false, false)
		return
	}

	if ev.Type == "" {
		ev.Type = common.BindingKey(msg.RoutingKey)
	}

	s.logger.Info("activity",
		slog.String("type", string(ev.Type)),
		slog.String("user_id", ev.UserID),
		slog.String("username", ev.Username),
		slog.String("blog_id", ev.BlogID),
		slog.String("title", ev.Title),
		slog.Time("at", ev.At),
	)

	if s.recorder != nil {
		s.recorder.RecordEvent(string(ev.Type))
	}

	_ = msg.Ack(false)
}

// Close stops the consumer and waits for it to return.
func (s *ActivityService) Close() {
	s.cancel()
	s.wg.Wait()
}
