package era

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// IsDataFile reports whether path has an extension Decode understands.
func IsDataFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	}
	return false
}

// Decode parses one era from data. The format is picked from the file
// name's extension. In strict mode unknown fields are errors.
func Decode(name string, data []byte, strict bool) (Era, error) {
	var e Era
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&e); err != nil {
			return Era{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(strict)
		if err := dec.Decode(&e); err != nil && err != io.EOF {
			return Era{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		if strict {
			dec.DisallowUnknownFields()
		}
		if err := dec.Decode(&e); err != nil {
			return Era{}, fmt.Errorf("failed to decode %s: %w", name, err)
		}
	default:
		return Era{}, fmt.Errorf("unsupported era file %s", name)
	}
	return e, nil
}

// ReadFile loads one era from a JSON, YAML or TOML file.
func ReadFile(path string, strict bool) (Era, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Era{}, fmt.Errorf("failed to read era file: %w", err)
	}
	return Decode(filepath.Base(path), data, strict)
}

// DataFiles lists the era files in dir in file-name order. A missing
// directory yields no files.
func DataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read eras directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && IsDataFile(entry.Name()) {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// LoadDir reads every era file in dir. A file that fails to decode or
// validate is reported to skip and left out of the result.
func LoadDir(ctx context.Context, dir string, skip func(path string, err error)) ([]Era, error) {
	paths, err := DataFiles(dir)
	if err != nil {
		return nil, err
	}

	var loaded []Era
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		e, err := ReadFile(path, false)
		if err == nil {
			if problems := Validate([]Era{e}); len(problems) > 0 {
				err = errors.New(strings.Join(problems, "; "))
			}
		}
		if err != nil {
			if skip != nil {
				skip(path, err)
			}
			continue
		}
		loaded = append(loaded, e)
	}
	return loaded, nil
}

// Overlay returns base with each era of extra applied: an era whose ID is
// already present replaces it in place, new eras are appended in order.
func Overlay(base, extra []Era) []Era {
	out := make([]Era, len(base), len(base)+len(extra))
	copy(out, base)

	index := make(map[string]int, len(out))
	for i, e := range out {
		index[e.ID] = i
	}
	for _, e := range extra {
		if i, ok := index[e.ID]; ok {
			out[i] = e
			continue
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	return out
}
