package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/astra/engine/core"
)

func TestMeshInstanceKeyTracksBlendState(t *testing.T) {
	ids := core.NewIDAllocator()
	m := NewMaterial(ids)
	mi := NewMeshInstance(m)

	opaque := mi.SortKey()
	assert.Zero(t, opaque>>63, "opaque instances sort before blended ones")

	m.SetBlendMode(BlendModeNormal)
	blended := mi.SortKey()
	assert.Equal(t, uint64(1), blended>>63)
	assert.NotEqual(t, opaque, blended)

	// The low bits carry the material id.
	assert.Equal(t, uint64(m.ID), blended&0xFFFFFFFF)
}

func TestMeshInstanceSetMaterialMovesBackReference(t *testing.T) {
	ids := core.NewIDAllocator()
	a := NewMaterial(ids)
	b := NewMaterial(ids)
	mi := NewMeshInstance(a)
	require.Len(t, a.MeshInstances(), 1)

	mi.SetMaterial(b)
	assert.Empty(t, a.MeshInstances())
	require.Len(t, b.MeshInstances(), 1)
	assert.Same(t, b, mi.Material())

	mi.SetMaterial(nil)
	assert.Empty(t, b.MeshInstances())
	assert.Zero(t, mi.SortKey())
}

func TestMeshInstanceCachedShader(t *testing.T) {
	ids := core.NewIDAllocator()
	m := NewMaterial(ids)
	mi := NewMeshInstance(m)

	s := &Shader{ID: 4, Name: "lit"}
	mi.SetCachedShader(s)
	require.Same(t, s, mi.CachedShader())

	m.ClearVariants()
	assert.Nil(t, mi.CachedShader(), "clearing variants must drop the cached shader")
}
