package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// OutcomeEvent is published once per processed resource. It carries
// the outcome together with the run it belongs to, so handlers can
// attribute results without direct dependencies on the run logic.
type OutcomeEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// RunID identifies the run the outcome belongs to
	RunID uuid.UUID `json:"run_id"`

	// Outcome is the per-resource result being published
	Outcome domain.Outcome `json:"outcome"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// NewOutcomeEvent creates a new OutcomeEvent for the given run and outcome.
func NewOutcomeEvent(runID uuid.UUID, outcome domain.Outcome) *OutcomeEvent {
	return &OutcomeEvent{
		ID:        uuid.New(),
		RunID:     runID,
		Outcome:   outcome,
		CreatedAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *OutcomeEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows run logic to publish outcomes without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *OutcomeEvent) error
}
