// Package store persists problems and contests as pretty-printed JSON
// array files plus one markdown blob per solution. The files live in a
// plain data directory that gitsync versions independently, so everything
// written here stays human-diffable.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// encodeJSON renders v as UTF-8 JSON with two-space indentation and no
// HTML escaping, matching the historical data files byte-for-byte.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeJSONFile writes v to path, creating parent directories as needed.
func writeJSONFile(path string, v any) error {
	data, err := encodeJSON(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// backupPath derives the sibling path a corrupt collection file is moved
// to before the collection is reinitialized.
func backupPath(path string) string {
	return strings.TrimSuffix(path, ".json") + ".backup.json"
}

// loadRawArray reads a JSON array file into loosely-typed records. A
// missing file initializes an empty collection; a corrupt file is moved to
// its backup path and replaced with an empty collection. Corruption is
// reported through the second return so callers can log it, never as an
// error.
func loadRawArray(path string) (records []map[string]any, recovered bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := writeJSONFile(path, []any{}); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, &records); err == nil {
		return records, false, nil
	}

	// Corrupt file: keep the bytes around for the user, start fresh.
	if err := os.WriteFile(backupPath(path), data, 0o644); err != nil {
		return nil, false, fmt.Errorf("backing up corrupt %s: %w", filepath.Base(path), err)
	}
	if err := writeJSONFile(path, []any{}); err != nil {
		return nil, false, err
	}
	return nil, true, nil
}
