package loaders

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spaghettifunk/astra/engine/core"
	"github.com/spaghettifunk/astra/engine/math"
	"github.com/spaghettifunk/astra/engine/renderer/metadata"
)

/** @brief The file extension of material definition files. */
const MaterialFileExtension string = ".amt"

type MaterialLoader struct{}

func (ml *MaterialLoader) Load(path string) (*metadata.MaterialConfig, error) {
	return parseAMTFile(path)
}

// parseAMTFile reads a key=value material definition. Shader parameters
// use prefixed keys: `param_<name> = <float...>` for numeric values and
// `texture_<name> = <texture name>` for texture references.
func parseAMTFile(filename string) (*metadata.MaterialConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	materialConfig := &metadata.MaterialConfig{
		BlendMode:         metadata.BlendModeNone,
		CullMode:          metadata.FaceCullModeBack,
		DepthTestEnabled:  true,
		DepthWriteEnabled: true,
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		// Split key-value pairs by the first "=" sign
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			core.LogWarn("skipping invalid line: %s", line)
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch {
		case key == "name":
			materialConfig.Name = value
		case key == "shader":
			materialConfig.ShaderName = value
		case key == "blend":
			mode, ok := metadata.ParseBlendMode(value)
			if !ok {
				return nil, fmt.Errorf("invalid blend mode: %s", value)
			}
			materialConfig.BlendMode = mode
		case key == "cull":
			mode, ok := metadata.ParseFaceCullMode(value)
			if !ok {
				return nil, fmt.Errorf("invalid cull mode: %s", value)
			}
			materialConfig.CullMode = mode
		case key == "depth_test":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid depth_test value: %s", value)
			}
			materialConfig.DepthTestEnabled = enabled
		case key == "depth_write":
			enabled, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid depth_write value: %s", value)
			}
			materialConfig.DepthWriteEnabled = enabled
		case key == "alpha_test_ref":
			ref, err := strconv.ParseFloat(value, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid alpha_test_ref value: %s", value)
			}
			materialConfig.AlphaTestReference = math.Clamp(float32(ref), 0.0, 1.0)
		case key == "autorelease":
			autoRelease, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid autorelease value: %s", value)
			}
			materialConfig.AutoRelease = autoRelease
		case strings.HasPrefix(key, "param_"):
			param, err := parseFloatParam(strings.TrimPrefix(key, "param_"), value)
			if err != nil {
				return nil, err
			}
			materialConfig.Parameters = append(materialConfig.Parameters, param)
		case strings.HasPrefix(key, "texture_"):
			materialConfig.Parameters = append(materialConfig.Parameters, metadata.ParameterConfig{
				Name:  strings.TrimPrefix(key, "texture_"),
				Value: metadata.TextureValue(value),
			})
		default:
			core.LogError("Unknown key '%s' found in file. Skipping...", key)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := validateMaterial(materialConfig); err != nil {
		return nil, err
	}
	return materialConfig, nil
}

// parseFloatParam turns whitespace-separated floats into a parameter
// value: one float stays scalar, four become a Vec4, anything else an
// array.
func parseFloatParam(name, value string) (metadata.ParameterConfig, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return metadata.ParameterConfig{}, fmt.Errorf("parameter '%s' has no value", name)
	}
	floats := make([]float32, len(fields))
	for i, field := range fields {
		f, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return metadata.ParameterConfig{}, fmt.Errorf("invalid value for parameter '%s': %s", name, field)
		}
		floats[i] = float32(f)
	}

	switch len(floats) {
	case 1:
		return metadata.ParameterConfig{Name: name, Value: metadata.FloatValue(floats[0])}, nil
	case 4:
		return metadata.ParameterConfig{
			Name:  name,
			Value: metadata.Vec4Value(math.NewVec4(floats[0], floats[1], floats[2], floats[3])),
		}, nil
	default:
		return metadata.ParameterConfig{Name: name, Value: metadata.FloatsValue(floats...)}, nil
	}
}

func validateMaterial(material *metadata.MaterialConfig) error {
	if material.Name == "" {
		return fmt.Errorf("material name is required")
	}
	if material.ShaderName == "" {
		return fmt.Errorf("shader name is required")
	}
	return nil
}
