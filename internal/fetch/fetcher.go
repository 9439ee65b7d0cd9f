package fetch

import (
	"context"
	"time"

	"github.com/csvsweep/csvsweep/internal/domain"
)

// Payload is the raw result of retrieving a resource.
type Payload struct {
	// Body is the complete response body.
	Body []byte

	// ContentType is the Content-Type header of the response, if any.
	ContentType string

	// ElapsedTime is how long the retrieval took, including reading
	// the body.
	ElapsedTime time.Duration
}

// Fetcher defines the interface for retrieving resource bodies.
// This interface serves as a boundary between the application core and
// the network, so run logic can be tested without real HTTP traffic.
type Fetcher interface {
	// Fetch retrieves the body of the given resource. The context
	// bounds the whole operation; implementations must return promptly
	// once it is canceled. Errors are reported through the sentinel
	// and typed errors in this package.
	Fetch(ctx context.Context, res domain.Resource) (*Payload, error)
}
