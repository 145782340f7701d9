// Package capability exposes the UHC sizing analysis as a dispatchable
// capability with metadata, inputs, outputs and lifecycle events.
package capability

// Capability identifiers
const (
	ID             = "org.ontobdc.aeco.distribution.flow.pipe.sizing.uhc"
	EventSuggested = ID + ".suggested"
	EventError     = ID + ".error"
)

// Metadata describes a capability to a dispatcher
type Metadata struct {
	ID          string              `json:"id" yaml:"id"`
	Version     string              `json:"version" yaml:"version"`
	Name        string              `json:"name" yaml:"name"`
	Description string              `json:"description" yaml:"description"`
	Author      string              `json:"author" yaml:"author"`
	Tags        []string            `json:"tags" yaml:"tags"`
	Events      map[string][]string `json:"events" yaml:"events"` // "success" and "failure" event types
}

// UHCSizingMetadata is the metadata of the UHC sizing capability
var UHCSizingMetadata = Metadata{
	ID:          ID,
	Version:     "0.1.0",
	Name:        "UHC Pipe Sizing",
	Description: "Calculates pipe sizing using the UHC method.",
	Author:      "Elias M. P. Junior",
	Tags:        []string{"sizing", "pipes", "uhc"},
	Events: map[string][]string{
		"success": {EventSuggested},
		"failure": {EventError},
	},
}
