package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bugdem/strategyboard/internal/grid"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// catalogFile is the YAML representation of a catalog.
type catalogFile struct {
	Buildings []buildingEntry `yaml:"buildings"`
	Units     []unitEntry     `yaml:"units"`
}

type buildingEntry struct {
	Name     string    `yaml:"name"`
	Title    string    `yaml:"title"`
	Width    int       `yaml:"width"`
	Height   int       `yaml:"height"`
	Spawn    *cellYAML `yaml:"spawn,omitempty"`
	Produces []string  `yaml:"produces,omitempty"`
}

type unitEntry struct {
	Name   string  `yaml:"name"`
	Title  string  `yaml:"title"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	Speed  float64 `yaml:"speed"`
}

type cellYAML struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Parse decodes a YAML catalog and checks its cross-references.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed to parse: %w", err)
	}

	c := New()
	for _, b := range file.Buildings {
		bp := Blueprint{
			Name:      b.Name,
			Title:     titleOr(b.Title, b.Name),
			Kind:      KindBuilding,
			Footprint: grid.F(b.Width, b.Height),
		}
		if len(b.Produces) > 0 {
			p := &Producer{Units: append([]string(nil), b.Produces...)}
			if b.Spawn != nil {
				p.SpawnOffset = grid.C(b.Spawn.X, b.Spawn.Y)
			}
			bp.Producer = p
		}
		if err := c.Register(bp); err != nil {
			return nil, err
		}
	}
	for _, u := range file.Units {
		bp := Blueprint{
			Name:      u.Name,
			Title:     titleOr(u.Title, u.Name),
			Kind:      KindUnit,
			Footprint: grid.F(u.Width, u.Height),
			Mobile:    &Mobile{Speed: u.Speed},
		}
		if err := c.Register(bp); err != nil {
			return nil, err
		}
	}

	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a catalog file. An empty path loads the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns a fresh copy of the embedded default catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalogYAML)
}

func titleOr(title, name string) string {
	if title != "" {
		return title
	}
	return name
}
