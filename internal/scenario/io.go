package scenario

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ivlev/interpoli/internal/system"
)

// Write writes doc to path as YAML, creating the parent directory.
func Write(doc *Document, path string) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal scenario: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read reads a scenario from a YAML file.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse decodes a scenario. Unknown fields are rejected.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &doc, nil
}

// GeneratePath creates a timestamped scenario filename in dir.
func GeneratePath(dir, name string) string {
	return system.TimestampedPath(dir, name, ".yaml", time.Now())
}

// FindLatest finds the most recent scenario file in dir.
func FindLatest(dir string) (string, error) {
	path, err := system.FindLatest(dir, ".yaml", ".yml")
	if err != nil {
		return "", fmt.Errorf("failed to find a scenario: %w", err)
	}
	return path, nil
}
