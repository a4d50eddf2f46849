package metadata

import (
	"fmt"

	"github.com/spaghettifunk/astra/engine/core"
)

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/** @brief The name given to materials that have not been named yet. */
const UntitledMaterialName string = "Untitled"

/** @brief Per-channel colour write flags for the bound render target. */
type ColorWriteMask struct {
	Red   bool
	Green bool
	Blue  bool
	Alpha bool
}

/**
 * @brief Material configuration typically loaded from a file or created
 * in code to populate a material from.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The name of the shader the material renders with. */
	ShaderName string
	/** @brief Indicates if the material should be automatically released when no references to it remain. */
	AutoRelease bool
	/** @brief The blending preset. */
	BlendMode BlendMode
	/** @brief The triangle face cull mode. */
	CullMode          FaceCullMode
	DepthTestEnabled  bool
	DepthWriteEnabled bool
	/** @brief The alpha test reference value in [0, 1]. */
	AlphaTestReference float32
	/** @brief Initial shader parameters, applied in order. */
	Parameters []ParameterConfig
}

/**
 * @brief A material: the shader, render state and shader parameters a
 * surface is drawn with. Materials own their parameter table and variant
 * cache; the shader and the mesh instances drawing with the material are
 * referenced, never owned.
 *
 * All mutation is expected to happen on the render/update thread.
 */
type Material struct {
	/** @brief The material id. Unique for the process lifetime, never recycled. */
	ID uint32
	/** @brief The material name. */
	Name string
	/** @brief The shader this material renders with. Not owned; nil until assigned. */
	Shader *Shader

	/** @brief The alpha test reference value. */
	AlphaTestReference float32
	BlendEnabled       bool
	BlendSrcFactor     BlendFactor
	BlendDstFactor     BlendFactor
	BlendEquation      BlendEquation
	CullMode           FaceCullMode
	DepthTestEnabled   bool
	DepthWriteEnabled  bool
	ColorWrite         ColorWriteMask

	parameters    map[string]*MaterialParameter
	variants      map[VariantKey]*Shader
	meshInstances []KeyObserver

	ids *core.IDAllocator
}

/**
 * @brief Required operation of material kinds that rebuild GPU-facing
 * state before use. The base Material does not provide a working
 * implementation; see Material.Update.
 */
type Updater interface {
	Update() error
}

/**
 * @brief Required operation of material kinds that populate themselves
 * from a structured description. The base Material does not provide a
 * working implementation; see Material.Init.
 */
type Initializer interface {
	Init(config *MaterialConfig) error
}

// NewMaterial creates a material with default render state: no blending,
// back-face culling, depth test and write on, all colour channels
// written. The id comes from the given allocator, which the material
// keeps for Clone.
func NewMaterial(ids *core.IDAllocator) *Material {
	return &Material{
		ID:                ids.Acquire(),
		Name:              UntitledMaterialName,
		BlendSrcFactor:    BlendFactorOne,
		BlendDstFactor:    BlendFactorZero,
		BlendEquation:     BlendEquationAdd,
		CullMode:          FaceCullModeBack,
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
		ColorWrite:        ColorWriteMask{Red: true, Green: true, Blue: true, Alpha: true},
		parameters:        make(map[string]*MaterialParameter),
		variants:          make(map[VariantKey]*Shader),
		ids:               ids,
	}
}

/**
 * @brief Derives the blending preset from the current blend state. The
 * preset table is scanned in order; state that matches no preset reports
 * BlendModeNormal, the closest reasonable default. Such state is still
 * valid for rendering, it is just not one of the named presets.
 */
func (m *Material) BlendMode() BlendMode {
	current := blendState{
		enabled:  m.BlendEnabled,
		src:      m.BlendSrcFactor,
		dst:      m.BlendDstFactor,
		equation: m.BlendEquation,
	}
	for _, entry := range blendModeTable {
		if entry.state == current {
			return entry.mode
		}
	}
	return BlendModeNormal
}

/**
 * @brief Applies a blending preset, writing all four blend state fields
 * at once, then asks every attached mesh instance to recompute its draw
 * sort key. Unknown presets are deliberately ignored.
 */
func (m *Material) SetBlendMode(mode BlendMode) {
	for _, entry := range blendModeTable {
		if entry.mode != mode {
			continue
		}
		m.BlendEnabled = entry.state.enabled
		m.BlendSrcFactor = entry.state.src
		m.BlendDstFactor = entry.state.dst
		m.BlendEquation = entry.state.equation
		m.notifyKeyChanged()
		return
	}
	core.LogDebug("material '%s': ignoring unknown blend mode %d", m.Name, mode)
}

// SetParameter upserts a parameter. An existing record keeps its resolved
// binding handle and only has its value replaced; a new record starts
// with an unresolved handle.
func (m *Material) SetParameter(name string, value MaterialValue) {
	if p, ok := m.parameters[name]; ok {
		p.Value = value
		return
	}
	m.parameters[name] = &MaterialParameter{Value: value}
}

// SetParameterConfig applies a single named parameter config through
// SetParameter.
func (m *Material) SetParameterConfig(config ParameterConfig) {
	m.SetParameter(config.Name, config.Value)
}

// SetParameterConfigs applies the configs in order; the last write wins
// for a repeated name.
func (m *Material) SetParameterConfigs(configs []ParameterConfig) {
	for _, config := range configs {
		m.SetParameterConfig(config)
	}
}

// Parameter returns the record for the given name without resolving its
// binding handle.
func (m *Material) Parameter(name string) (*MaterialParameter, bool) {
	p, ok := m.parameters[name]
	return p, ok
}

// DeleteParameter removes the named parameter. Removing a name that is
// not present does nothing.
func (m *Material) DeleteParameter(name string) {
	delete(m.parameters, name)
}

// ClearParameters empties the parameter table.
func (m *Material) ClearParameters() {
	m.parameters = make(map[string]*MaterialParameter)
}

// Parameters returns the live parameter table, not a copy. Callers must
// not assume isolation from later mutation.
func (m *Material) Parameters() map[string]*MaterialParameter {
	return m.parameters
}

/**
 * @brief Pushes every parameter into the device's active scope. Binding
 * handles are resolved lazily, at most once per name: a nil handle
 * triggers resolution, a previously resolved handle is reused. Names the
 * device cannot resolve are skipped and retried on the next call.
 */
func (m *Material) SetParameters(device BindingResolver) {
	for name, p := range m.parameters {
		if p.Binding == nil {
			p.Binding = device.Resolve(name)
			if p.Binding == nil {
				core.LogDebug("material '%s': no binding for parameter '%s'", m.Name, name)
				continue
			}
		}
		p.Binding.SetValue(p.Value)
	}
}

// Variant returns the compiled shader variant cached for the given key.
func (m *Material) Variant(key VariantKey) (*Shader, bool) {
	s, ok := m.variants[key]
	return s, ok
}

// SetVariant caches a compiled shader variant for the given key.
func (m *Material) SetVariant(key VariantKey, shader *Shader) {
	m.variants[key] = shader
}

// Variants returns the live variant cache.
func (m *Material) Variants() map[VariantKey]*Shader {
	return m.variants
}

/**
 * @brief Drops the entire variant cache and invalidates the cached
 * compiled shader of every attached mesh instance, forcing a variant
 * lookup on next use. Broader than a parameter change: it reaches the
 * mesh instances themselves, not just their sort keys.
 */
func (m *Material) ClearVariants() {
	m.variants = make(map[VariantKey]*Shader)
	for _, mi := range m.meshInstances {
		mi.InvalidateShader()
	}
}

// AddMeshInstance attaches an observer that draws with this material.
// The material does not own it; it only notifies it on state changes
// that affect its sort key.
func (m *Material) AddMeshInstance(observer KeyObserver) {
	m.meshInstances = append(m.meshInstances, observer)
}

// RemoveMeshInstance detaches the observer. Unknown observers are
// ignored.
func (m *Material) RemoveMeshInstance(observer KeyObserver) {
	for i, mi := range m.meshInstances {
		if mi == observer {
			m.meshInstances = append(m.meshInstances[:i], m.meshInstances[i+1:]...)
			return
		}
	}
}

// MeshInstances returns the attached observers in attach order.
func (m *Material) MeshInstances() []KeyObserver {
	return m.meshInstances
}

func (m *Material) notifyKeyChanged() {
	for _, mi := range m.meshInstances {
		mi.UpdateKey()
	}
}

/**
 * @brief Creates a material with a fresh id, this material's name and
 * render state scalars, and an empty parameter table, empty variant
 * cache, no shader and no mesh instances. The caller re-resolves the
 * shader and attaches instances itself.
 */
func (m *Material) Clone() *Material {
	clone := NewMaterial(m.ids)
	clone.Name = m.Name
	clone.AlphaTestReference = m.AlphaTestReference
	clone.BlendEnabled = m.BlendEnabled
	clone.BlendSrcFactor = m.BlendSrcFactor
	clone.BlendDstFactor = m.BlendDstFactor
	clone.BlendEquation = m.BlendEquation
	clone.CullMode = m.CullMode
	clone.DepthTestEnabled = m.DepthTestEnabled
	clone.DepthWriteEnabled = m.DepthWriteEnabled
	clone.ColorWrite = m.ColorWrite
	return clone
}

// Update is a required override point for concrete material kinds that
// rebuild GPU-facing state before use. The base material always fails.
func (m *Material) Update() error {
	err := fmt.Errorf("material '%s': Update on base material: %w", m.Name, core.ErrNotImplemented)
	core.LogError(err.Error())
	return err
}

// Init is a required override point for concrete material kinds that
// populate themselves from a config. The base material always fails.
func (m *Material) Init(config *MaterialConfig) error {
	err := fmt.Errorf("material '%s': Init on base material: %w", m.Name, core.ErrNotImplemented)
	core.LogError(err.Error())
	return err
}

// UpdateShader is an override point for material kinds that generate
// their shader procedurally. A plain material renders with its assigned
// shader, so the base implementation does nothing.
func (m *Material) UpdateShader(device BindingResolver, scene interface{}, defines VariantKey) {
}

// GetName returns the material name.
//
// Deprecated: read the Name field directly.
func (m *Material) GetName() string {
	return m.Name
}

// SetName sets the material name.
//
// Deprecated: write the Name field directly.
func (m *Material) SetName(name string) {
	m.Name = name
}

// GetShader returns the material shader.
//
// Deprecated: read the Shader field directly.
func (m *Material) GetShader() *Shader {
	return m.Shader
}

// SetShader sets the material shader.
//
// Deprecated: write the Shader field directly.
func (m *Material) SetShader(shader *Shader) {
	m.Shader = shader
}
