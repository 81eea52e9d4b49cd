package activityservice

import (
	"context"
	"sync"

	"github.com/sushihentaime/bloglist/internal/common"
)

// ActivityService consumes the domain events published on the bloglist
// exchange and writes one audit line per event.
type ActivityService struct {
	mb       common.MessageConsumer
	recorder Recorder
	logger   ActivityLogger
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

type ActivityLogger interface {
	Error(msg string, args ...any)
	Info(msg string, args ...any)
}

// Recorder counts consumed events by type.
type Recorder interface {
	RecordEvent(eventType string)
}
