package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const savedHeader = "# fixraster configuration\n# Written by -save-config; load it back with -config.\n\n"

// SaveTo writes the merged configuration as YAML. Missing parent
// directories are created.
func (c *Config) SaveTo(path string) error {
	var buf bytes.Buffer
	buf.WriteString(savedHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
