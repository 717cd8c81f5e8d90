package scaffold

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads a project config file. The format is chosen by extension
// and the document is checked against the config schema before it is decoded
// over DefaultConfig("").
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	return ParseConfig(filename, data)
}

// ParseConfig is LoadConfig for data already in memory. filename is only
// used to pick the format and label errors.
func ParseConfig(filename string, data []byte) (Config, error) {
	doc := make(map[string]any)
	if err := decodeConfigFile(filename, bytes.NewReader(data), &doc); err != nil {
		return Config{}, fmt.Errorf("%w: decoding %s: %w", ErrInvalidConfig, filename, err)
	}

	issues, err := ValidateDocument(doc)
	if err != nil {
		return Config{}, fmt.Errorf("validating %s: %w", filename, err)
	}
	if len(issues) > 0 {
		return Config{}, &ConfigError{File: filename, Issues: issues}
	}

	cfg := DefaultConfig("")
	if err := decodeConfigFile(filename, bytes.NewReader(data), &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decoding %s: %w", ErrInvalidConfig, filename, err)
	}

	return cfg.Normalize(), nil
}

func decodeConfigFile(filename string, r io.Reader, v any) error {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".toml":
		_, err := toml.NewDecoder(r).Decode(v)
		if err != nil {
			return err
		}
		return nil
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(v); err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return fmt.Errorf("unexpected extra YAML document")
			}
			return err
		}
		return nil
	case ".json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(v); err != nil {
			return err
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			if err == nil {
				return fmt.Errorf("unexpected extra content after JSON document")
			}
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported config file type %q (supported: .toml, .yaml, .yml, .json)", ext)
	}
}
