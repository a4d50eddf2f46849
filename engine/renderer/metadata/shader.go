package metadata

import (
	"sort"
	"strings"
)

/**
 * @brief A compiled shader on the frontend. The material layer treats it
 * as an opaque handle; compilation and reflection live behind the
 * renderer backend.
 */
type Shader struct {
	/** @brief The shader identifier. */
	ID   uint32
	Name string
}

/**
 * @brief Identifies one compiled variant of a shader: the canonical form
 * of the feature defines it was specialized with.
 */
type VariantKey string

// VariantKeyFromDefines builds a key from a set of feature defines.
// Order and duplicates in the input do not affect the key.
func VariantKeyFromDefines(defines []string) VariantKey {
	if len(defines) == 0 {
		return ""
	}
	uniq := make(map[string]struct{}, len(defines))
	for _, d := range defines {
		uniq[d] = struct{}{}
	}
	keys := make([]string, 0, len(uniq))
	for d := range uniq {
		keys = append(keys, d)
	}
	sort.Strings(keys)
	return VariantKey(strings.Join(keys, ";"))
}
