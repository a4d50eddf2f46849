package systems

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

func newTestMaterialSystem(t *testing.T) *MaterialSystem {
	t.Helper()
	ms, err := NewMaterialSystem(&MaterialSystemConfig{MaxMaterialCount: 8})
	require.NoError(t, err)
	return ms
}

func glassConfig() *metadata.MaterialConfig {
	return &metadata.MaterialConfig{
		Name:              "glass",
		ShaderName:        "pbr",
		AutoRelease:       true,
		BlendMode:         metadata.BlendModePremultiplied,
		CullMode:          metadata.FaceCullModeNone,
		DepthTestEnabled:  true,
		DepthWriteEnabled: false,
		Parameters: []metadata.ParameterConfig{
			{Name: "u_tint", Value: metadata.FloatValue(0.8)},
		},
	}
}

func TestNewMaterialSystemValidatesConfig(t *testing.T) {
	_, err := NewMaterialSystem(&MaterialSystemConfig{MaxMaterialCount: 0})
	assert.Error(t, err)
}

func TestAcquireFromConfig(t *testing.T) {
	ms := newTestMaterialSystem(t)

	m, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)
	assert.Equal(t, "glass", m.Name)
	assert.Equal(t, metadata.BlendModePremultiplied, m.BlendMode())
	assert.Equal(t, metadata.FaceCullModeNone, m.CullMode)
	assert.False(t, m.DepthWriteEnabled)
	p, ok := m.Parameter("u_tint")
	require.True(t, ok)
	assert.Equal(t, float32(0.8), p.Value.Float)

	// Acquiring the same name again returns the same material.
	again, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)
	assert.Same(t, m, again)
}

func TestAcquireUnknownName(t *testing.T) {
	ms := newTestMaterialSystem(t)
	_, err := ms.Acquire("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrNotFound))
}

func TestReleaseDropsAutoReleaseMaterials(t *testing.T) {
	ms := newTestMaterialSystem(t)

	m, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)
	_, err = ms.Acquire("glass")
	require.NoError(t, err)

	ms.Release("glass")
	got, err := ms.Acquire("glass")
	require.NoError(t, err, "one reference is still held")
	assert.Same(t, m, got)

	ms.Release("glass")
	ms.Release("glass")
	_, err = ms.Acquire("glass")
	assert.Error(t, err, "last reference released, material dropped")

	// Releasing an unknown name is a no-op.
	ms.Release("glass")
}

func TestMaterialIDsNeverReused(t *testing.T) {
	ms := newTestMaterialSystem(t)

	m, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)
	firstID := m.ID
	ms.Release("glass")

	again, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)
	assert.Greater(t, again.ID, firstID)
}

func TestCloneGeneratesNameWhenEmpty(t *testing.T) {
	ms := newTestMaterialSystem(t)
	source, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)

	clone, err := ms.Clone(source, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(clone.Name, "glass_"))
	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, source.BlendMode(), clone.BlendMode())
	assert.Empty(t, clone.Parameters())

	named, err := ms.Clone(source, "glass_hardened")
	require.NoError(t, err)
	assert.Equal(t, "glass_hardened", named.Name)

	_, err = ms.Clone(source, "glass_hardened")
	assert.Error(t, err, "clone names must be unique")
}

func TestAcquireFromConfigEnforcesCapacity(t *testing.T) {
	ms, err := NewMaterialSystem(&MaterialSystemConfig{MaxMaterialCount: 1})
	require.NoError(t, err)

	_, err = ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)

	cfg := glassConfig()
	cfg.Name = "steel"
	_, err = ms.AcquireFromConfig(cfg)
	assert.Error(t, err)
}

func TestReloadKeepsIdentityAndRefreshesKeys(t *testing.T) {
	ms := newTestMaterialSystem(t)
	m, err := ms.AcquireFromConfig(glassConfig())
	require.NoError(t, err)

	mi := metadata.NewMeshInstance(m)
	keyBefore := mi.SortKey()

	cfg := glassConfig()
	cfg.BlendMode = metadata.BlendModeNone
	require.NoError(t, ms.Reload(cfg))

	got, err := ms.Acquire("glass")
	require.NoError(t, err)
	assert.Same(t, m, got, "reload must keep the registered instance")
	assert.Equal(t, metadata.BlendModeNone, m.BlendMode())
	assert.NotEqual(t, keyBefore, mi.SortKey())
}

func TestGetDefault(t *testing.T) {
	ms := newTestMaterialSystem(t)
	def := ms.GetDefault()
	require.NotNil(t, def)
	assert.Equal(t, metadata.DefaultMaterialName, def.Name)

	got, err := ms.Acquire(metadata.DefaultMaterialName)
	require.NoError(t, err)
	assert.Same(t, def, got)
}
