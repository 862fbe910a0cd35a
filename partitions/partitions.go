// Package partitions loads the optional mapping from domain names to
// directory base DNs.
package partitions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a partition map:
//
//	partitions:
//	  extranet: OU=Extranet,DC=example,DC=local
type File struct {
	Partitions map[string]string `yaml:"partitions"`
}

// Map resolves domain names to base DNs. Names are matched case-insensitively.
type Map map[string]string

// Load reads a partition map from path. An empty path yields an empty Map.
func Load(path string) (Map, error) {
	if path == "" {
		return Map{}, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read partition map: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML partition map.
func Parse(data []byte) (Map, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse partition map: %w", err)
	}
	m := make(Map, len(f.Partitions))
	for name, dn := range f.Partitions {
		name = strings.TrimSpace(name)
		dn = strings.TrimSpace(dn)
		if name == "" || dn == "" {
			return nil, fmt.Errorf("partition map entry %q has an empty name or DN", name)
		}
		m[strings.ToLower(name)] = dn
	}
	return m, nil
}

// Lookup returns the base DN mapped to name.
func (m Map) Lookup(name string) (string, bool) {
	dn, ok := m[strings.ToLower(strings.TrimSpace(name))]
	return dn, ok
}
