package communication

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Event is what gets pushed to websocket clients and NATS subscribers
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

const (
	EventChatResponse  = "CHAT_RESPONSE"
	EventRuntimeStatus = "RUNTIME_STATUS"
)

// Publisher delivers events to one sink.
type Publisher interface {
	Publish(event Event) error
}

// Fanout publishes every event to all of its sinks. Sink errors are logged
// and never returned to the request that produced the event.
type Fanout struct {
	sinks  []Publisher
	logger *zap.Logger
}

// NewFanout skips nil sinks.
func NewFanout(logger *zap.Logger, sinks ...Publisher) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	f := &Fanout{logger: logger}
	for _, s := range sinks {
		if s != nil {
			f.sinks = append(f.sinks, s)
		}
	}
	return f
}

// Broadcast sends an event built from eventType and payload to every sink.
func (f *Fanout) Broadcast(eventType string, payload interface{}) {
	if f == nil {
		return
	}
	if err := f.Publish(Event{Type: eventType, Payload: payload}); err != nil {
		f.logger.Warn("Event delivery failed", zap.String("type", eventType), zap.Error(err))
	}
}

// Publish implements Publisher; the returned error joins all sink failures.
func (f *Fanout) Publish(event Event) error {
	var errs []error
	for _, s := range f.sinks {
		if err := s.Publish(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SubjectFor maps an event type to its NATS subject.
func SubjectFor(prefix, eventType string) string {
	return prefix + "." + strings.ToLower(eventType)
}
