package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Loader handles loading scenarios from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new scenario loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all scenario files.
// Invalid files are skipped. Returns scenarios sorted by name.
func (l *Loader) LoadAll() ([]Scenario, error) {
	var scenarios []Scenario

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}

		sc, err := LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		scenarios = append(scenarios, sc)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].Name < scenarios[j].Name
	})

	return scenarios, nil
}

// LoadByName loads a specific scenario by name.
func (l *Loader) LoadByName(name string) (Scenario, error) {
	scenarios, err := l.LoadAll()
	if err != nil {
		return Scenario{}, err
	}

	for _, sc := range scenarios {
		if sc.Name == name {
			return sc, nil
		}
	}

	return Scenario{}, fmt.Errorf("scenario not found: %s", name)
}

// LoadFile loads a single scenario file.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	sc.FilePath = path
	return sc, nil
}
