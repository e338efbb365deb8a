// Package descriptions maps free-text work descriptions to short stable
// identifiers so drill-down requests can carry an opaque token instead
// of round-tripping long non-ASCII text.
package descriptions

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"go.uber.org/fx"
)

// idLength is the number of hex characters kept from the content hash.
// Twelve characters keep accidental collisions negligible for the few
// hundred distinct descriptions a month produces.
const idLength = 12

var Module = fx.Module("descriptions",
	fx.Provide(NewRegistry),
)

// Registry is a process-wide bidirectional text<->id mapping. It is
// populated incrementally and never cleared before shutdown.
type Registry struct {
	mu     sync.Mutex
	byID   map[string]string
	byText map[string]string
}

func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[string]string),
		byText: make(map[string]string),
	}
}

// Register returns the deterministic short id for text, recording the
// mapping on first sight. Registering the same text again returns the
// same id without growing memory.
func (r *Registry) Register(text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.byText[text]; ok {
		return id
	}

	sum := sha256.Sum256([]byte(text))
	id := hex.EncodeToString(sum[:])[:idLength]
	r.byID[id] = text
	r.byText[text] = id
	return id
}

// Resolve returns the text registered under id.
func (r *Registry) Resolve(id string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	text, ok := r.byID[id]
	return text, ok
}

// Len returns the number of registered descriptions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}
