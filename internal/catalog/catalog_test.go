package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bugdem/strategyboard/internal/grid"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() failed: %v", err)
	}

	barracks, err := c.Get("barracks")
	if err != nil {
		t.Fatalf("Get(barracks) failed: %v", err)
	}
	if barracks.Kind != KindBuilding || barracks.Footprint != grid.F(4, 4) {
		t.Errorf("barracks = %+v", barracks)
	}
	if barracks.Producer == nil || barracks.Producer.SpawnOffset != grid.C(0, -1) {
		t.Fatalf("barracks producer = %+v", barracks.Producer)
	}
	if !barracks.CanProduce("soldier") || barracks.CanProduce("barracks") {
		t.Error("barracks production list is wrong")
	}

	plant, _ := c.Get("power_plant")
	if plant.Producer != nil {
		t.Error("power_plant should not produce")
	}

	soldier, _ := c.Get("soldier")
	if soldier.Kind != KindUnit || soldier.Mobile == nil {
		t.Errorf("soldier = %+v", soldier)
	}
}

func TestDefaultReturnsFreshCatalogs(t *testing.T) {
	a, _ := Default()
	b, _ := Default()
	if err := a.Register(Blueprint{Name: "tower", Kind: KindBuilding, Footprint: grid.F(1, 1)}); err != nil {
		t.Fatal(err)
	}
	if b.Exists("tower") {
		t.Error("Default() catalogs share state")
	}
}

func TestList(t *testing.T) {
	c, _ := Default()
	list := c.List()
	if len(list) != c.Len() {
		t.Fatalf("List() len = %d, expected %d", len(list), c.Len())
	}

	expected := []string{"barracks", "depot", "power_plant", "wall", "scout", "soldier"}
	for i, name := range expected {
		if list[i].Name != name {
			t.Errorf("List()[%d] = %s, expected %s", i, list[i].Name, name)
		}
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name string
		bp   Blueprint
		err  error
	}{
		{"ok", Blueprint{Name: "tower", Kind: KindBuilding, Footprint: grid.F(2, 2)}, nil},
		{"empty name", Blueprint{Kind: KindBuilding, Footprint: grid.F(1, 1)}, ErrInvalidBlueprint},
		{"bad footprint", Blueprint{Name: "x", Kind: KindUnit, Footprint: grid.F(0, 1)}, grid.ErrInvalidFootprint},
		{"no kind", Blueprint{Name: "x", Footprint: grid.F(1, 1)}, ErrInvalidBlueprint},
		{"mobile building", Blueprint{Name: "x", Kind: KindBuilding, Footprint: grid.F(1, 1), Mobile: &Mobile{}}, ErrInvalidBlueprint},
		{"producing unit", Blueprint{Name: "x", Kind: KindUnit, Footprint: grid.F(1, 1), Producer: &Producer{}}, ErrInvalidBlueprint},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			err := c.Register(tt.bp)
			if tt.err == nil && err != nil {
				t.Fatalf("Register() = %v, expected nil", err)
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Fatalf("Register() = %v, expected %v", err, tt.err)
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := New()
	bp := Blueprint{Name: "tower", Kind: KindBuilding, Footprint: grid.F(1, 1)}
	if err := c.Register(bp); err != nil {
		t.Fatal(err)
	}
	if err := c.Register(bp); !errors.Is(err, ErrDuplicate) {
		t.Errorf("second Register() = %v, expected ErrDuplicate", err)
	}
}

func TestGetUnknown(t *testing.T) {
	c := New()
	if _, err := c.Get("ghost"); !errors.Is(err, ErrUnknownBlueprint) {
		t.Errorf("Get() = %v, expected ErrUnknownBlueprint", err)
	}
}

func TestParseCrossReferences(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown unit", "buildings:\n  - {name: b, width: 1, height: 1, produces: [ghost]}\n"},
		{"produces building", "buildings:\n  - {name: b, width: 1, height: 1, produces: [c]}\n  - {name: c, width: 1, height: 1}\n"},
		{"duplicate across kinds", "buildings:\n  - {name: a, width: 1, height: 1}\nunits:\n  - {name: a, width: 1, height: 1}\n"},
		{"malformed", "buildings: {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "buildings:\n  - {name: hq, width: 3, height: 2, spawn: {x: 3, y: 0}, produces: [drone]}\nunits:\n  - {name: drone, width: 1, height: 1, speed: 3}\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	hq, err := c.Get("hq")
	if err != nil {
		t.Fatal(err)
	}
	if hq.Title != "hq" {
		t.Errorf("Title = %q, expected name fallback", hq.Title)
	}
	if hq.Producer.SpawnOffset != grid.C(3, 0) {
		t.Errorf("SpawnOffset = %v, expected (3,0)", hq.Producer.SpawnOffset)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}
