package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

// recordingBackend counts resolutions and records every pushed value.
type recordingBackend struct {
	locations map[string]uint32
	resolves  map[string]int
	pushes    map[uint32][]metadata.MaterialValue
	unknown   map[string]bool
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		locations: make(map[string]uint32),
		resolves:  make(map[string]int),
		pushes:    make(map[uint32][]metadata.MaterialValue),
		unknown:   make(map[string]bool),
	}
}

func (rb *recordingBackend) Initialize(appName string) error { return nil }
func (rb *recordingBackend) Shutdown() error                 { return nil }

func (rb *recordingBackend) ResolveBinding(name string) (uint32, bool) {
	rb.resolves[name]++
	if rb.unknown[name] {
		return 0, false
	}
	if loc, ok := rb.locations[name]; ok {
		return loc, true
	}
	loc := uint32(len(rb.locations))
	rb.locations[name] = loc
	return loc, true
}

func (rb *recordingBackend) SetBindingValue(location uint32, value metadata.MaterialValue) bool {
	rb.pushes[location] = append(rb.pushes[location], value)
	return true
}

func TestDeviceResolveIsIdempotent(t *testing.T) {
	backend := newRecordingBackend()
	device, err := NewDevice("test", backend)
	require.NoError(t, err)

	first := device.Resolve("u_tint")
	second := device.Resolve("u_tint")
	require.NotNil(t, first)
	assert.Same(t, first.(*Binding), second.(*Binding))
	assert.Equal(t, 1, backend.resolves["u_tint"], "backend lookup must happen once per name")
}

func TestDeviceResolveUnknownName(t *testing.T) {
	backend := newRecordingBackend()
	backend.unknown["u_missing"] = true
	device, err := NewDevice("test", backend)
	require.NoError(t, err)

	assert.Nil(t, device.Resolve("u_missing"))

	// An unknown name is not negatively cached; a later shader change
	// can make it resolvable.
	backend.unknown["u_missing"] = false
	assert.NotNil(t, device.Resolve("u_missing"))
}

func TestBindingSetValuePushesToBackend(t *testing.T) {
	backend := newRecordingBackend()
	device, err := NewDevice("test", backend)
	require.NoError(t, err)

	handle := device.Resolve("u_exposure")
	require.NotNil(t, handle)
	handle.SetValue(metadata.FloatValue(0.5))

	loc := backend.locations["u_exposure"]
	require.Len(t, backend.pushes[loc], 1)
	assert.Equal(t, float32(0.5), backend.pushes[loc][0].Float)
}

func TestMaterialSetParametersThroughDevice(t *testing.T) {
	backend := newRecordingBackend()
	device, err := NewDevice("test", backend)
	require.NoError(t, err)

	m := metadata.NewMaterial(core.NewIDAllocator())
	m.SetParameter("u_tint", metadata.FloatValue(1))
	m.SetParameter("u_noise", metadata.TextureValue("noise"))

	m.SetParameters(device)
	m.SetParameter("u_tint", metadata.FloatValue(2))
	m.SetParameters(device)

	assert.Equal(t, 1, backend.resolves["u_tint"])
	assert.Equal(t, 1, backend.resolves["u_noise"])

	loc := backend.locations["u_tint"]
	require.Len(t, backend.pushes[loc], 2)
	assert.Equal(t, float32(1), backend.pushes[loc][0].Float)
	assert.Equal(t, float32(2), backend.pushes[loc][1].Float)
}

func TestNoopBackendResolvesEverything(t *testing.T) {
	device, err := NewDevice("test", nil)
	require.NoError(t, err)

	h := device.Resolve("anything")
	require.NotNil(t, h)
	h.SetValue(metadata.FloatValue(1))
	require.NoError(t, device.Shutdown())
}
