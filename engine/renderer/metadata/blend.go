package metadata

/** @brief Multiplier applied to the source or destination colour when blending. */
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcColour
	BlendFactorOneMinusSrcColour
	BlendFactorDstColour
	BlendFactorOneMinusDstColour
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
)

/** @brief Equation used to combine the weighted source and destination colours. */
type BlendEquation int

const (
	BlendEquationAdd BlendEquation = iota
	BlendEquationSubtract
	BlendEquationReverseSubtract
	BlendEquationMin
	BlendEquationMax
)

/** @brief The triangle face cull mode. */
type FaceCullMode int

const (
	/** @brief No faces are culled. */
	FaceCullModeNone FaceCullMode = 0x0
	/** @brief Only front faces are culled. */
	FaceCullModeFront FaceCullMode = 0x1
	/** @brief Only back faces are culled. */
	FaceCullModeBack FaceCullMode = 0x2
	/** @brief Both front and back faces are culled. */
	FaceCullModeFrontAndBack FaceCullMode = 0x3
)

/**
 * @brief A named blending preset. Each preset decodes to a fixed
 * {enabled, source factor, destination factor, equation} quadruple; the
 * mapping is bidirectional, see Material.BlendMode.
 */
type BlendMode int

const (
	/** @brief No blending, source fragments overwrite the target. */
	BlendModeNone BlendMode = iota
	/** @brief Standard alpha blending. */
	BlendModeNormal
	/** @brief Alpha blending for colours already multiplied by their alpha. */
	BlendModePremultiplied
	/** @brief Source fragments are added onto the target. */
	BlendModeAdditive
	/** @brief Additive blending weighted by source alpha. */
	BlendModeAdditiveAlpha
	/** @brief Target colour is multiplied by the source colour. */
	BlendModeMultiplicative
)

type blendState struct {
	enabled  bool
	src      BlendFactor
	dst      BlendFactor
	equation BlendEquation
}

// Match order matters: BlendMode is derived by scanning this table
// top-to-bottom for the first exact quadruple match.
var blendModeTable = []struct {
	mode  BlendMode
	state blendState
}{
	{BlendModeNone, blendState{false, BlendFactorOne, BlendFactorZero, BlendEquationAdd}},
	{BlendModeNormal, blendState{true, BlendFactorSrcAlpha, BlendFactorOneMinusSrcAlpha, BlendEquationAdd}},
	{BlendModePremultiplied, blendState{true, BlendFactorOne, BlendFactorOneMinusSrcAlpha, BlendEquationAdd}},
	{BlendModeAdditive, blendState{true, BlendFactorOne, BlendFactorOne, BlendEquationAdd}},
	{BlendModeAdditiveAlpha, blendState{true, BlendFactorSrcAlpha, BlendFactorOne, BlendEquationAdd}},
	{BlendModeMultiplicative, blendState{true, BlendFactorDstColour, BlendFactorZero, BlendEquationAdd}},
}

func (m BlendMode) String() string {
	switch m {
	case BlendModeNone:
		return "none"
	case BlendModeNormal:
		return "normal"
	case BlendModePremultiplied:
		return "premultiplied"
	case BlendModeAdditive:
		return "additive"
	case BlendModeAdditiveAlpha:
		return "additive_alpha"
	case BlendModeMultiplicative:
		return "multiplicative"
	}
	return "unknown"
}

// ParseBlendMode maps a blend mode name from a material file to its
// preset. The second return is false for unknown names.
func ParseBlendMode(name string) (BlendMode, bool) {
	for _, entry := range blendModeTable {
		if entry.mode.String() == name {
			return entry.mode, true
		}
	}
	return BlendModeNormal, false
}

func (m FaceCullMode) String() string {
	switch m {
	case FaceCullModeNone:
		return "none"
	case FaceCullModeFront:
		return "front"
	case FaceCullModeBack:
		return "back"
	case FaceCullModeFrontAndBack:
		return "front_and_back"
	}
	return "unknown"
}

// ParseFaceCullMode maps a cull mode name from a material file to its
// enum value. The second return is false for unknown names.
func ParseFaceCullMode(name string) (FaceCullMode, bool) {
	for _, m := range []FaceCullMode{FaceCullModeNone, FaceCullModeFront, FaceCullModeBack, FaceCullModeFrontAndBack} {
		if m.String() == name {
			return m, true
		}
	}
	return FaceCullModeBack, false
}
