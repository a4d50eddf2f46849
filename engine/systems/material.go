package systems

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

type MaterialSystemConfig struct {
	/** @brief The maximum number of materials that can be registered at once. */
	MaxMaterialCount uint32
}

type materialReference struct {
	referenceCount uint64
	autoRelease    bool
	material       *metadata.Material
}

/**
 * @brief Owns every registered material: a name-keyed registry with
 * reference counting, the id allocator materials draw their ids from,
 * and the default material. Acquire/Release pair up; a material whose
 * config asked for auto-release is dropped when its last reference goes.
 */
type MaterialSystem struct {
	Config *MaterialSystemConfig
	// Hashtable for material lookups by name.
	registeredMaterialTable map[string]*materialReference
	DefaultMaterial         *metadata.Material

	ids *core.IDAllocator
}

func NewMaterialSystem(config *MaterialSystemConfig) (*MaterialSystem, error) {
	if config.MaxMaterialCount == 0 {
		err := fmt.Errorf("func NewMaterialSystem - config.MaxMaterialCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}

	ms := &MaterialSystem{
		Config:                  config,
		registeredMaterialTable: make(map[string]*materialReference),
		ids:                     core.NewIDAllocator(),
	}

	// Create the default material for use as a fallback.
	ms.DefaultMaterial = metadata.NewMaterial(ms.ids)
	ms.DefaultMaterial.Name = metadata.DefaultMaterialName

	return ms, nil
}

func (ms *MaterialSystem) Shutdown() error {
	ms.registeredMaterialTable = make(map[string]*materialReference)
	return nil
}

// GetDefault returns the default material. It is never registered and
// never released.
func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return ms.DefaultMaterial
}

// NewMaterial creates an unregistered material drawing its id from the
// system's allocator.
func (ms *MaterialSystem) NewMaterial() *metadata.Material {
	return metadata.NewMaterial(ms.ids)
}

// Acquire returns the registered material with the given name and
// increments its reference count.
func (ms *MaterialSystem) Acquire(name string) (*metadata.Material, error) {
	if name == metadata.DefaultMaterialName {
		core.LogWarn("func material system Acquire called for default material. Use GetDefault for material 'default'")
		return ms.DefaultMaterial, nil
	}
	ref, ok := ms.registeredMaterialTable[name]
	if !ok {
		err := fmt.Errorf("no material named '%s' is registered: %w", name, core.ErrNotFound)
		core.LogError(err.Error())
		return nil, err
	}
	ref.referenceCount++
	return ref.material, nil
}

// AcquireFromConfig builds a material from a config, registers it under
// the config name and returns it with a reference count of 1. Acquiring
// a name that is already registered increments its count instead; the
// config is not re-applied.
func (ms *MaterialSystem) AcquireFromConfig(config *metadata.MaterialConfig) (*metadata.Material, error) {
	if ref, ok := ms.registeredMaterialTable[config.Name]; ok {
		ref.referenceCount++
		return ref.material, nil
	}
	if uint32(len(ms.registeredMaterialTable)) >= ms.Config.MaxMaterialCount {
		err := fmt.Errorf("material system is full (max=%d), cannot register '%s'", ms.Config.MaxMaterialCount, config.Name)
		core.LogError(err.Error())
		return nil, err
	}

	material := ms.materialFromConfig(config)
	ms.registeredMaterialTable[config.Name] = &materialReference{
		referenceCount: 1,
		autoRelease:    config.AutoRelease,
		material:       material,
	}
	core.LogDebug("registered material '%s' (id=%d)", material.Name, material.ID)
	return material, nil
}

// Reload re-applies a config to an already registered material in place,
// keeping its id, references and mesh instances. Used by the asset
// hot-reload path. Unregistered names are registered fresh.
func (ms *MaterialSystem) Reload(config *metadata.MaterialConfig) error {
	ref, ok := ms.registeredMaterialTable[config.Name]
	if !ok {
		_, err := ms.AcquireFromConfig(config)
		return err
	}
	m := ref.material
	ms.applyConfig(m, config)
	// State changed under the instances; refresh their keys the same way
	// the blend mode setter does.
	for _, mi := range m.MeshInstances() {
		mi.UpdateKey()
	}
	core.LogInfo("reloaded material '%s'", config.Name)
	return nil
}

// Release decrements the reference count of a registered material. When
// the count reaches zero and the material was acquired with auto-release,
// it is dropped from the registry.
func (ms *MaterialSystem) Release(name string) {
	if name == metadata.DefaultMaterialName {
		return
	}
	ref, ok := ms.registeredMaterialTable[name]
	if !ok {
		core.LogWarn("func material system Release called for unknown material '%s'. Nothing was done", name)
		return
	}
	if ref.referenceCount == 0 {
		core.LogWarn("func material system Release called on material '%s' with no references. Nothing was done", name)
		return
	}
	ref.referenceCount--
	if ref.referenceCount == 0 && ref.autoRelease {
		delete(ms.registeredMaterialTable, name)
		core.LogDebug("released material '%s'", name)
	}
}

// Clone copies a material's name and render state into a new registered
// material with a fresh id. An empty name generates one from the source
// name and a random suffix.
func (ms *MaterialSystem) Clone(source *metadata.Material, name string) (*metadata.Material, error) {
	if uint32(len(ms.registeredMaterialTable)) >= ms.Config.MaxMaterialCount {
		err := fmt.Errorf("material system is full (max=%d), cannot clone '%s'", ms.Config.MaxMaterialCount, source.Name)
		core.LogError(err.Error())
		return nil, err
	}
	clone := source.Clone()
	if name == "" {
		suffix := strings.Split(uuid.New().String(), "-")[0]
		name = fmt.Sprintf("%s_%s", source.Name, suffix)
	}
	if _, ok := ms.registeredMaterialTable[name]; ok {
		err := fmt.Errorf("a material named '%s' is already registered", name)
		core.LogError(err.Error())
		return nil, err
	}
	clone.Name = name
	ms.registeredMaterialTable[name] = &materialReference{
		referenceCount: 1,
		autoRelease:    false,
		material:       clone,
	}
	return clone, nil
}

func (ms *MaterialSystem) materialFromConfig(config *metadata.MaterialConfig) *metadata.Material {
	m := metadata.NewMaterial(ms.ids)
	ms.applyConfig(m, config)
	return m
}

func (ms *MaterialSystem) applyConfig(m *metadata.Material, config *metadata.MaterialConfig) {
	m.Name = config.Name
	m.SetBlendMode(config.BlendMode)
	m.CullMode = config.CullMode
	m.DepthTestEnabled = config.DepthTestEnabled
	m.DepthWriteEnabled = config.DepthWriteEnabled
	m.AlphaTestReference = config.AlphaTestReference
	m.SetParameterConfigs(config.Parameters)
	// The shader itself is compiled elsewhere; keep the reference the
	// material already has until the shader system swaps it.
}
