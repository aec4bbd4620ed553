package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"project-sync/core/reconcile"
	"project-sync/core/utils"

	"gopkg.in/yaml.v3"
)

// Format is a snapshot serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension; JSON unless .yaml/.yml.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Normalize returns a copy of s with timestamps of every document converted
// to unix milliseconds.
func Normalize(s *reconcile.Snapshot) *reconcile.Snapshot {
	if s == nil {
		return nil
	}
	out := &reconcile.Snapshot{
		Project:      normalizeDoc(s.Project),
		DesignSystem: normalizeDoc(s.DesignSystem),
	}
	if s.ElementProperties != nil {
		out.ElementProperties = make(map[string]reconcile.Document, len(s.ElementProperties))
		for id, doc := range s.ElementProperties {
			out.ElementProperties[id] = normalizeDoc(doc)
		}
	}
	if s.Assets != nil {
		out.Assets = make(map[string]reconcile.Document, len(s.Assets))
		for id, doc := range s.Assets {
			out.Assets[id] = normalizeDoc(doc)
		}
	}
	return out
}

func normalizeDoc(doc reconcile.Document) reconcile.Document {
	if doc == nil {
		return nil
	}
	return reconcile.Document(utils.NormalizeTimestamps(doc))
}

// Decode parses a snapshot in the given format.
func Decode(data []byte, format Format) (*reconcile.Snapshot, error) {
	var s reconcile.Snapshot
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode yaml snapshot: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("failed to decode json snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
	return &s, nil
}

// Encode serializes a snapshot in the given format.
func Encode(s *reconcile.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("failed to encode yaml snapshot: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatJSON:
		return json.MarshalIndent(s, "", "  ")
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}
}

// ReadFile loads and normalizes a snapshot file.
func ReadFile(path string) (*reconcile.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", path, err)
	}
	s, err := Decode(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return Normalize(s), nil
}

// WriteFile serializes s to path in the format implied by its extension.
func WriteFile(path string, s *reconcile.Snapshot) error {
	data, err := Encode(s, FormatFromPath(path))
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
