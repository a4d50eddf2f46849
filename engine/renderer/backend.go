package renderer

import (
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief The backend seam between the material layer and a concrete
 * graphics API. A backend owns name-to-location resolution for the
 * currently bound shader scope and the actual upload of values.
 */
type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	/** @brief Resolve a binding name to a backend location. False when the scope does not expose the name. */
	ResolveBinding(name string) (uint32, bool)
	/** @brief Push a value to a previously resolved location. */
	SetBindingValue(location uint32, value metadata.MaterialValue) bool
}

/**
 * @brief A backend that resolves every name and discards every value.
 * Used when running without a GPU, for tooling and in tests.
 */
type NoopBackend struct {
	locations map[string]uint32
}

func NewNoopBackend() *NoopBackend {
	return &NoopBackend{locations: make(map[string]uint32)}
}

func (nb *NoopBackend) Initialize(appName string) error {
	return nil
}

func (nb *NoopBackend) Shutdown() error {
	return nil
}

func (nb *NoopBackend) ResolveBinding(name string) (uint32, bool) {
	if loc, ok := nb.locations[name]; ok {
		return loc, true
	}
	loc := uint32(len(nb.locations))
	nb.locations[name] = loc
	return loc, true
}

func (nb *NoopBackend) SetBindingValue(location uint32, value metadata.MaterialValue) bool {
	return true
}
