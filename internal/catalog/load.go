package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed data/*.json
var embedded embed.FS

const (
	coursesFile      = "courses.json"
	requirementsFile = "requirements.json"
	offeringsFile    = "offerings.json"
)

// Default builds a Catalog from the data set compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded data: %w", err)
	}
	return load(sub, nil)
}

// LoadDir builds a Catalog from the JSON files in dir. Any file missing from
// dir is taken from the embedded data set instead.
func LoadDir(dir string) (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, fmt.Errorf("opening embedded data: %w", err)
	}
	return load(sub, os.DirFS(filepath.Clean(dir)))
}

func load(fallback, primary fs.FS) (*Catalog, error) {
	var courses []Course
	if err := decodeFile(primary, fallback, coursesFile, &courses); err != nil {
		return nil, err
	}
	var reqs Requirements
	if err := decodeFile(primary, fallback, requirementsFile, &reqs); err != nil {
		return nil, err
	}
	var offerings Offerings
	if err := decodeFile(primary, fallback, offeringsFile, &offerings); err != nil {
		return nil, err
	}
	return New(courses, reqs, offerings), nil
}

func decodeFile(primary, fallback fs.FS, name string, v any) error {
	var data []byte
	var err error
	if primary != nil {
		data, err = fs.ReadFile(primary, name)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("reading %s: %w", name, err)
		}
	}
	if primary == nil || err != nil {
		data, err = fs.ReadFile(fallback, name)
		if err != nil {
			return fmt.Errorf("reading embedded %s: %w", name, err)
		}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
