// FILE: lixenwraith/envconfig/template_file.go
package envconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadTemplate reads a flat template file, keeping the order keys appear in.
// The format follows the extension: .toml/.tml or .yaml/.yml. Each top-level
// key's value is its default: a string, a number or a boolean. Use an empty
// string, or nan (TOML) / .nan (YAML), to mark a key mandatory.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("template file '%s' not found: %w", path, err)
		}
		return nil, fmt.Errorf("failed to read template file '%s': %w", path, err)
	}

	switch detectFileFormat(path) {
	case "toml":
		return parseTOMLTemplate(data, path)
	case "yaml":
		return parseYAMLTemplate(data, path)
	default:
		return nil, fmt.Errorf("unable to determine template format for file '%s'", path)
	}
}

func parseTOMLTemplate(data []byte, path string) (*Template, error) {
	values := make(map[string]any)
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML template '%s': %w", path, err)
	}

	t := NewTemplate()
	for _, key := range md.Keys() {
		if len(key) != 1 {
			return nil, fmt.Errorf("template '%s': nested key %q is not supported", path, key.String())
		}
		name := key[0]
		if err := t.Register(name, values[name]); err != nil {
			return nil, fmt.Errorf("template '%s': %w", path, err)
		}
	}
	return t, nil
}

func parseYAMLTemplate(data []byte, path string) (*Template, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML template '%s': %w", path, err)
	}

	t := NewTemplate()
	if len(doc.Content) == 0 {
		return t, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("template '%s': top level must be a mapping", path)
	}

	// Mapping content alternates key and value nodes
	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode, valueNode := root.Content[i], root.Content[i+1]
		if valueNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("template '%s': value of %q must be a scalar", path, keyNode.Value)
		}

		var value any
		if err := valueNode.Decode(&value); err != nil {
			return nil, fmt.Errorf("template '%s': key %q: %w", path, keyNode.Value, err)
		}
		if value == nil {
			// `KEY:` with no value reads as a mandatory string
			value = ""
		}
		if err := t.Register(keyNode.Value, value); err != nil {
			return nil, fmt.Errorf("template '%s': %w", path, err)
		}
	}
	return t, nil
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".tml":
		return "toml"
	case ".yaml", ".yml":
		return "yaml"
	default:
		return ""
	}
}
