package capability

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alexiusacademia/gouhc/internal/bim"
	"github.com/alexiusacademia/gouhc/internal/logging"
	"github.com/alexiusacademia/gouhc/internal/nbr8160"
	"github.com/alexiusacademia/gouhc/internal/network"
)

// PipeRecord is a pipe already extracted from a model, used when no model is available
type PipeRecord struct {
	ID   string   `json:"guid"`
	Name string   `json:"name"`
	DN   *float64 `json:"dn,omitempty"`
}

// Inputs of an execution. When Model is set the full network analysis runs;
// otherwise Pipes are passed through with their own diameter.
type Inputs struct {
	Model      bim.Model
	SinkFilter string
	Pipes      []PipeRecord
}

// SizedPipe is the sizing suggestion for one pipe
type SizedPipe struct {
	ID             string   `json:"guid"`
	Name           string   `json:"name"`
	SuggestedDN    DN       `json:"suggested_dn"`
	SuggestedSlope *float64 `json:"suggested_slope,omitempty"` // %
	AccumulatedUHC *float64 `json:"accumulated_uhc,omitempty"`
}

// Output of an execution
type Output struct {
	SizedPipes []SizedPipe `json:"sized_pipes"`
	Degraded   bool        `json:"degraded,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Event is emitted after every execution
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Capability string    `json:"capability"`
	Time       time.Time `json:"time"`
	Output     *Output   `json:"output,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// EventSink receives capability events
type EventSink interface {
	Publish(ctx context.Context, ev Event) error
}

// UHCSizing suggests pipe diameters and slopes from accumulated fixture loads
type UHCSizing struct {
	Tables  nbr8160.Tables
	Keyword string       // sink keyword used when the input has no sink filter
	Events  EventSink    // optional
	Logger  *slog.Logger // optional
}

// Metadata returns the capability metadata
func (c *UHCSizing) Metadata() Metadata {
	return UHCSizingMetadata
}

// Execute runs the capability and emits its success or failure event
func (c *UHCSizing) Execute(ctx context.Context, in Inputs) (*Output, error) {
	_, out, err := c.Run(ctx, in)
	return out, err
}

// Run is Execute that also returns the network analysis behind the output.
// The analysis is nil in degraded mode.
func (c *UHCSizing) Run(ctx context.Context, in Inputs) (*network.Result, *Output, error) {
	logger := c.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	res, out, err := c.run(ctx, in, logger)
	ev := Event{
		ID:         uuid.NewString(),
		Capability: ID,
		Time:       time.Now().UTC(),
	}
	if err != nil {
		ev.Type = EventError
		ev.Error = err.Error()
	} else {
		ev.Type = EventSuggested
		ev.Output = out
	}
	if c.Events != nil {
		if perr := c.Events.Publish(ctx, ev); perr != nil {
			logger.Warn("capability event not delivered", "event", ev.Type, "error", perr)
		}
	}
	return res, out, err
}

func (c *UHCSizing) run(ctx context.Context, in Inputs, logger *slog.Logger) (*network.Result, *Output, error) {
	if in.Model == nil {
		return nil, passThrough(in.Pipes), nil
	}

	res, err := network.Analyze(ctx, in.Model, c.Tables, network.Options{
		Sinks:  network.SinkFilter{Filter: in.SinkFilter, Keyword: c.Keyword},
		Logger: logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return res, FromNetwork(res), nil
}

// FromNetwork reports every pipe-like node of an analysis in discovery order
func FromNetwork(res *network.Result) *Output {
	out := &Output{SizedPipes: []SizedPipe{}}
	for _, n := range res.Network.Pipes() {
		name := n.Element.Name()
		if name == "" {
			name = "Unnamed"
		}
		sp := SizedPipe{
			ID:          n.ID(),
			Name:        name,
			SuggestedDN: DN{Value: float64(n.Sizing.DN), Overflow: n.Sizing.Overflow},
		}
		acc := n.AccumulatedUHC
		sp.AccumulatedUHC = &acc
		if !n.Sizing.Overflow {
			slope := n.Sizing.Slope
			sp.SuggestedSlope = &slope
		}
		out.SizedPipes = append(out.SizedPipes, sp)
	}
	for _, w := range res.Warnings {
		out.Warnings = append(out.Warnings, w.Error())
	}
	return out
}

func passThrough(pipes []PipeRecord) *Output {
	out := &Output{SizedPipes: make([]SizedPipe, 0, len(pipes)), Degraded: true}
	for _, p := range pipes {
		sp := SizedPipe{ID: p.ID, Name: p.Name}
		if p.DN != nil {
			sp.SuggestedDN = DN{Value: *p.DN}
		}
		out.SizedPipes = append(out.SizedPipes, sp)
	}
	return out
}
