package identity

import (
	"github.com/google/uuid"

	"PromiseDetector/internal/ports"
)

// Generator issues opaque identifiers backed by random UUIDs. It is
// injected wherever records are created locally so tests can swap in a
// deterministic source.
type Generator struct{}

var _ ports.IDGenerator = Generator{}

// NewID returns a fresh opaque identifier.
func (Generator) NewID() string {
	return uuid.NewString()
}
