package notify

import (
	"context"

	"github.com/CosmoTheDev/prmedia/internal/compose"
)

// Channel is implemented by each delivery target.
type Channel interface {
	Name() string
	IsConfigured() bool
	// Send makes exactly one delivery attempt.
	Send(ctx context.Context, doc compose.Document) error
}

// DeliveryError is returned when the chat service rejects a message or
// cannot be reached.
type DeliveryError struct {
	Channel string
	Reason  string
}

func (e *DeliveryError) Error() string {
	return e.Channel + " post failed: " + e.Reason
}
