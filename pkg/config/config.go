// Package config turns loose option maps (YAML, JSON, tool arguments) into a
// validated domain.Config.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/outlet/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Decode applies raw on top of domain.DefaultConfig and validates the result.
// Unknown keys are rejected. Every failure wraps domain.ErrConfiguration.
func Decode(raw map[string]any) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	if len(raw) == 0 {
		return cfg, nil
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		ErrorUnused:      true,
		ZeroFields:       true, // a given list replaces the default, never merges into it
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return domain.Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return domain.Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML or JSON (format "yaml" or "json") into a Config.
func Parse(data []byte, format string) (domain.Config, error) {
	raw := map[string]any{}
	switch strings.ToLower(format) {
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return domain.Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	case "yaml", "yml", "":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return domain.Config{}, fmt.Errorf("%w: %v", domain.ErrConfiguration, err)
		}
	default:
		return domain.Config{}, fmt.Errorf("%w: unsupported format %q", domain.ErrConfiguration, format)
	}
	return Decode(raw)
}

// LoadFile reads an outlet configuration file. The format follows the file
// extension; anything but .json is read as YAML.
func LoadFile(path string) (domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Config{}, fmt.Errorf("failed to read outlet config: %w", err)
	}
	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}
	return Parse(data, format)
}
