package metadata

import (
	"github.com/spaghettifunk/astra/engine/math"
)

/** @brief Discriminates the payload of a MaterialValue. */
type ValueKind int

const (
	/** @brief No payload. The zero MaterialValue has this kind. */
	ValueKindNone ValueKind = iota
	/** @brief A single float32. */
	ValueKindFloat
	/** @brief A 4-element vector / RGBA colour. */
	ValueKindVec4
	/** @brief An array of float32. */
	ValueKindFloats
	/** @brief A by-name texture reference. */
	ValueKindTexture
)

/** @brief A by-name reference to a texture owned elsewhere. */
type TextureRef struct {
	Name string
}

/**
 * @brief A tagged variant holding one shader parameter value. Exactly one
 * payload field is meaningful, selected by Kind.
 */
type MaterialValue struct {
	Kind    ValueKind
	Float   float32
	Vec4    math.Vec4
	Floats  []float32
	Texture *TextureRef
}

func FloatValue(f float32) MaterialValue {
	return MaterialValue{Kind: ValueKindFloat, Float: f}
}

func Vec4Value(v math.Vec4) MaterialValue {
	return MaterialValue{Kind: ValueKindVec4, Vec4: v}
}

func FloatsValue(f ...float32) MaterialValue {
	return MaterialValue{Kind: ValueKindFloats, Floats: f}
}

func TextureValue(name string) MaterialValue {
	return MaterialValue{Kind: ValueKindTexture, Texture: &TextureRef{Name: name}}
}

/**
 * @brief A handle to a named shader binding on a device. Resolution of a
 * name to a handle happens at most once per name per device; the handle
 * is then reused to push values without further lookups.
 */
type BindingHandle interface {
	SetValue(value MaterialValue)
}

/**
 * @brief Resolves shader binding names to handles. Implemented by the
 * renderer's Device. Resolve returns nil for names the active shader
 * scope does not expose.
 */
type BindingResolver interface {
	Resolve(name string) BindingHandle
}

/**
 * @brief A single entry in a material's parameter table. Binding stays
 * nil until the parameter is first pushed to a device.
 */
type MaterialParameter struct {
	Binding BindingHandle
	Value   MaterialValue
}

/** @brief A named parameter value, the unit of the batch parameter APIs. */
type ParameterConfig struct {
	Name  string
	Value MaterialValue
}
