// Package events publishes capability events to NATS.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"

	"github.com/alexiusacademia/gouhc/internal/capability"
	"github.com/alexiusacademia/gouhc/internal/logging"
)

const (
	headerEventID = "Gouhc-Event-Id"
	flushTimeout  = 5 * time.Second
)

// natsHeaderCarrier adapts nats.Msg headers for the OTel TextMapCarrier
type natsHeaderCarrier nats.Msg

func (c *natsHeaderCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *natsHeaderCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *natsHeaderCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

// Publisher sends capability events as JSON messages
type Publisher struct {
	nc     *nats.Conn
	prefix string
	owned  bool
	logger *slog.Logger
}

// NewPublisher publishes on an existing connection. A nil logger discards.
func NewPublisher(nc *nats.Conn, prefix string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Publisher{nc: nc, prefix: prefix, logger: logger}
}

// Dial connects to url and returns a publisher owning the connection
func Dial(url, prefix string, logger *slog.Logger) (*Publisher, error) {
	nc, err := nats.Connect(url, nats.Name("gouhc"), nats.Timeout(flushTimeout))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	p := NewPublisher(nc, prefix, logger)
	p.owned = true
	return p, nil
}

// Subject returns the subject an event type is published on
func (p *Publisher) Subject(eventType string) string {
	if p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Publish sends ev, carrying the trace context of ctx in the message headers
func (p *Publisher) Publish(ctx context.Context, ev capability.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := &nats.Msg{
		Subject: p.Subject(ev.Type),
		Data:    data,
	}
	otel.GetTextMapPropagator().Inject(ctx, (*natsHeaderCarrier)(msg))
	(*natsHeaderCarrier)(msg).Set(headerEventID, ev.ID)

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publish %s: %w", msg.Subject, err)
	}
	fctx, cancel := ctx, context.CancelFunc(func() {})
	if _, ok := ctx.Deadline(); !ok {
		fctx, cancel = context.WithTimeout(ctx, flushTimeout)
	}
	defer cancel()
	if err := p.nc.FlushWithContext(fctx); err != nil {
		return fmt.Errorf("flush %s: %w", msg.Subject, err)
	}
	p.logger.Debug("event published", "subject", msg.Subject, "id", ev.ID)
	return nil
}

// Close drains the connection if the publisher opened it
func (p *Publisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.nc.Drain()
}
