package renderer

import (
	"fmt"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/**
 * @brief The rendering device frontend. It exposes the binding scope
 * materials push their parameters into and caches resolved bindings so
 * each name is looked up on the backend at most once per device.
 */
type Device struct {
	backend  RendererBackend
	bindings map[string]*Binding
}

/** @brief A resolved named binding on a device scope. */
type Binding struct {
	device   *Device
	name     string
	location uint32
}

func NewDevice(appName string, backend RendererBackend) (*Device, error) {
	if backend == nil {
		backend = NewNoopBackend()
	}
	if err := backend.Initialize(appName); err != nil {
		err = fmt.Errorf("device init failed: %w", err)
		core.LogError(err.Error())
		return nil, err
	}
	return &Device{
		backend:  backend,
		bindings: make(map[string]*Binding),
	}, nil
}

func (d *Device) Shutdown() error {
	return d.backend.Shutdown()
}

// Resolve returns the binding handle for a name, resolving it on the
// backend the first time and reusing the cached handle afterwards.
// Returns nil for names the backend does not expose; those are not
// cached, so a later shader change can still resolve them.
func (d *Device) Resolve(name string) metadata.BindingHandle {
	if b, ok := d.bindings[name]; ok {
		return b
	}
	location, ok := d.backend.ResolveBinding(name)
	if !ok {
		return nil
	}
	b := &Binding{device: d, name: name, location: location}
	d.bindings[name] = b
	return b
}

// SetValue pushes a value through the binding into the device's active
// scope.
func (b *Binding) SetValue(value metadata.MaterialValue) {
	if !b.device.backend.SetBindingValue(b.location, value) {
		core.LogWarn("binding '%s': backend rejected value of kind %d", b.name, value.Kind)
	}
}

// Name returns the binding name the handle was resolved from.
func (b *Binding) Name() string {
	return b.name
}
