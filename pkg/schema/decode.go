package schema

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode converts a generic map (parsed YAML, JSON or frontmatter) into a
// normalized and validated Definition.
func Decode(raw map[string]any) (*Definition, error) {
	var def Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &def,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	def.Normalize()
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Parse reads a definition document. format is a file extension
// (".json" selects JSON, anything else YAML).
func Parse(data []byte, format string) (*Definition, error) {
	var raw map[string]any
	if strings.EqualFold(format, ".json") {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse json definition: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse yaml definition: %w", err)
		}
	}
	if raw == nil {
		return nil, fmt.Errorf("empty definition document")
	}
	return Decode(raw)
}

// LoadFile reads a YAML or JSON definition from disk.
// When the document has no name, the file name (without extension) is used.
func LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	ext := filepath.Ext(path)
	var raw map[string]any
	if strings.EqualFold(ext, ".json") {
		err = json.Unmarshal(data, &raw)
	} else {
		err = yaml.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: empty definition document", filepath.Base(path))
	}
	if _, ok := raw["name"]; !ok {
		raw["name"] = strings.TrimSuffix(filepath.Base(path), ext)
	}

	def, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return def, nil
}

// Marshal renders a definition as YAML, the format the CLI prints.
func Marshal(def *Definition) ([]byte, error) {
	return yaml.Marshal(def)
}
