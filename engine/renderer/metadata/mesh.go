package metadata

/**
 * @brief The notification capability a material requires from the mesh
 * instances drawing with it. The relationship is one-directional: the
 * material calls through this interface and never touches instance
 * fields.
 */
type KeyObserver interface {
	/** @brief Recompute the cached draw sort key from the owning material's state. */
	UpdateKey()
	/** @brief Drop the cached compiled shader, forcing a variant lookup on next use. */
	InvalidateShader()
}

/**
 * @brief A renderable instance of a mesh. It references a material and
 * caches a sort key derived from the material's blend state, so draw
 * submission can order instances without re-reading material state.
 */
type MeshInstance struct {
	material     *Material
	sortKey      uint64
	cachedShader *Shader
}

func NewMeshInstance(material *Material) *MeshInstance {
	mi := &MeshInstance{}
	mi.SetMaterial(material)
	return mi
}

// SetMaterial switches the instance to the given material, moving the
// back-reference and recomputing the sort key. A nil material detaches
// the instance.
func (mi *MeshInstance) SetMaterial(material *Material) {
	if mi.material != nil {
		mi.material.RemoveMeshInstance(mi)
	}
	mi.material = material
	if material != nil {
		material.AddMeshInstance(mi)
	}
	mi.UpdateKey()
}

func (mi *MeshInstance) Material() *Material {
	return mi.material
}

// Sort key layout: transparency in the top bit so opaque draws sort
// before blended ones, then the blend preset, then the material id.
func (mi *MeshInstance) UpdateKey() {
	if mi.material == nil {
		mi.sortKey = 0
		return
	}
	var transparent uint64
	if mi.material.BlendEnabled {
		transparent = 1
	}
	mi.sortKey = transparent<<63 | uint64(mi.material.BlendMode())<<32 | uint64(mi.material.ID)
}

func (mi *MeshInstance) SortKey() uint64 {
	return mi.sortKey
}

func (mi *MeshInstance) InvalidateShader() {
	mi.cachedShader = nil
}

// CachedShader returns the compiled shader variant cached on the
// instance, nil when a lookup is needed.
func (mi *MeshInstance) CachedShader() *Shader {
	return mi.cachedShader
}

func (mi *MeshInstance) SetCachedShader(shader *Shader) {
	mi.cachedShader = shader
}
