package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/propagation"

	"github.com/alexiusacademia/gouhc/internal/capability"
	"github.com/alexiusacademia/gouhc/internal/logging"
)

func startTestNATS(t *testing.T) (*natsserver.Server, *nats.Conn) {
	t.Helper()
	opts := &natsserver.Options{Port: -1}
	srv, err := natsserver.NewServer(opts)
	require.NoError(t, err)
	srv.Start()
	if !srv.ReadyForConnections(3 * time.Second) {
		t.Fatal("nats not ready")
	}
	nc, err := nats.Connect(srv.ClientURL())
	require.NoError(t, err)
	t.Cleanup(func() {
		nc.Close()
		srv.Shutdown()
	})
	return srv, nc
}

func TestSubject(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"gouhc", "gouhc." + capability.EventSuggested},
		{"", capability.EventSuggested},
	}
	for _, tt := range tests {
		p := NewPublisher(nil, tt.prefix, logging.NewDiscardLogger())
		assert.Equal(t, tt.want, p.Subject(capability.EventSuggested))
	}
}

func TestPublishEvent(t *testing.T) {
	_, nc := startTestNATS(t)

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("gouhc.>", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	dn := 75.0
	ev := capability.Event{
		ID:         "ev-1",
		Type:       capability.EventSuggested,
		Capability: capability.ID,
		Time:       time.Now().UTC(),
		Output: &capability.Output{
			SizedPipes: []capability.SizedPipe{{ID: "P", Name: "TQ 01", SuggestedDN: capability.DN{Value: dn}}},
		},
	}

	p := NewPublisher(nc, "gouhc", logging.NewDiscardLogger())
	require.NoError(t, p.Publish(context.Background(), ev))

	select {
	case msg := <-ch:
		assert.Equal(t, "gouhc."+capability.EventSuggested, msg.Subject)
		assert.Equal(t, "ev-1", msg.Header.Get(headerEventID))

		var got capability.Event
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		assert.Equal(t, ev.Type, got.Type)
		require.NotNil(t, got.Output)
		require.Len(t, got.Output.SizedPipes, 1)
		assert.Equal(t, dn, got.Output.SizedPipes[0].SuggestedDN.Value)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPublishInjectsTraceContext(t *testing.T) {
	_, nc := startTestNATS(t)

	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.Baggage{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	member, err := baggage.NewMember("run", "42")
	require.NoError(t, err)
	bag, err := baggage.New(member)
	require.NoError(t, err)
	ctx := baggage.ContextWithBaggage(context.Background(), bag)

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("gouhc.>", ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	p := NewPublisher(nc, "gouhc", logging.NewDiscardLogger())
	require.NoError(t, p.Publish(ctx, capability.Event{ID: "ev-2", Type: capability.EventError, Error: "boom"}))

	select {
	case msg := <-ch:
		assert.Equal(t, "gouhc."+capability.EventError, msg.Subject)
		assert.Equal(t, "run=42", msg.Header.Get("baggage"))
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPublishAsCapabilitySink(t *testing.T) {
	_, nc := startTestNATS(t)
	var sink capability.EventSink = NewPublisher(nc, "gouhc", logging.NewDiscardLogger())

	ch := make(chan *nats.Msg, 1)
	sub, err := nc.ChanSubscribe("gouhc."+capability.EventSuggested, ch)
	require.NoError(t, err)
	defer sub.Unsubscribe()

	c := &capability.UHCSizing{Events: sink, Logger: logging.NewDiscardLogger()}
	dn := 100.0
	_, err = c.Execute(context.Background(), capability.Inputs{
		Pipes: []capability.PipeRecord{{ID: "P", Name: "TQ", DN: &dn}},
	})
	require.NoError(t, err)

	select {
	case msg := <-ch:
		var got capability.Event
		require.NoError(t, json.Unmarshal(msg.Data, &got))
		require.NotNil(t, got.Output)
		assert.True(t, got.Output.Degraded)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPublishWithoutLogger(t *testing.T) {
	_, nc := startTestNATS(t)
	p := NewPublisher(nc, "gouhc", nil)
	assert.NotPanics(t, func() {
		require.NoError(t, p.Publish(context.Background(), capability.Event{ID: "ev-3", Type: capability.EventSuggested}))
	})
}

func TestDialUnreachable(t *testing.T) {
	_, err := Dial("nats://127.0.0.1:1", "gouhc", logging.NewDiscardLogger())
	assert.Error(t, err)
}

func TestCloseBorrowedConnection(t *testing.T) {
	_, nc := startTestNATS(t)
	p := NewPublisher(nc, "gouhc", logging.NewDiscardLogger())
	require.NoError(t, p.Close())
	assert.True(t, nc.IsConnected())
}
