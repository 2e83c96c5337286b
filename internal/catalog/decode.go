package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format is a catalog serialization syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the decoder for a catalog reference by extension.
// Unknown extensions are treated as JSON.
func FormatFor(ref string) Format {
	switch strings.ToLower(path.Ext(ref)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Decode parses a catalog payload. The payload is either a list of projects
// or a table with a "projects" list; TOML only supports the latter.
func Decode(data []byte, format Format) ([]Project, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing yaml catalog: %w", err)
		}
		return decodeGeneric(v)
	case FormatTOML:
		var v map[string]any
		if err := toml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parsing toml catalog: %w", err)
		}
		return decodeGeneric(v)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", format)
	}
}

func decodeJSON(data []byte) ([]Project, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, errors.New("parsing json catalog: empty payload")
	}

	if trimmed[0] == '{' {
		var wrapped struct {
			Projects []Project `json:"projects"`
		}
		if err := json.Unmarshal(trimmed, &wrapped); err != nil {
			return nil, fmt.Errorf("parsing json catalog: %w", err)
		}
		return wrapped.Projects, nil
	}

	var projects []Project
	if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, fmt.Errorf("parsing json catalog: %w", err)
	}
	return projects, nil
}

// decodeGeneric routes YAML and TOML documents through the JSON schema so
// every syntax shares one set of field rules.
func decodeGeneric(v any) ([]Project, error) {
	if m, ok := v.(map[string]any); ok {
		list, ok := m["projects"]
		if !ok {
			return nil, errors.New("catalog table has no projects list")
		}
		v = list
	}
	if _, ok := v.([]any); !ok {
		return nil, fmt.Errorf("catalog must be a list of projects, got %T", v)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("normalizing catalog: %w", err)
	}
	var projects []Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("normalizing catalog: %w", err)
	}
	return projects, nil
}
