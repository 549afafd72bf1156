package communication

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// DefaultSubjectPrefix prefixes every event subject, e.g. jarvis.events.chat_response.
const DefaultSubjectPrefix = "jarvis.events"

// NATSPublisher publishes events as JSON on a NATS connection.
type NATSPublisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

// NewNATSPublisher connects to url.
func NewNATSPublisher(url string, logger *zap.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	nc, err := nats.Connect(url,
		nats.Name("jarvis-gateway"),
		nats.Timeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to nats at %s: %w", url, err)
	}
	logger.Info("Connected to NATS", zap.String("url", url))
	return &NATSPublisher{conn: nc, prefix: DefaultSubjectPrefix, logger: logger}, nil
}

// Publish sends the event on SubjectFor(prefix, event.Type).
func (p *NATSPublisher) Publish(event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}
	subject := SubjectFor(p.prefix, event.Type)
	p.logger.Debug("Publishing event", zap.String("subject", subject))
	return p.conn.Publish(subject, data)
}

// Close drains pending messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
	}
}
