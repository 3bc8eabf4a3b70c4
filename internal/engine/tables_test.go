package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jeevanfit/jeevanfit-engine/internal/utils"
)

func TestDefaultTablesValid(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("default tables invalid: %v", err)
	}
}

func TestLoadTablesDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		tables, err := LoadTables(path)
		if err != nil {
			t.Fatalf("LoadTables(%q): %v", path, err)
		}
		if tables.Retention.SodiumHigh != 2000 {
			t.Fatalf("expected default sodium threshold, got %v", tables.Retention.SodiumHigh)
		}
	}
}

func TestLoadTablesOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte(`retention:
  sodiumHigh: 1800
trends:
  changeThreshold: 0.25
`), 0644); err != nil {
		t.Fatalf("write tables: %v", err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	if tables.Retention.SodiumHigh != 1800 {
		t.Fatalf("expected overlay sodium threshold, got %v", tables.Retention.SodiumHigh)
	}
	if tables.Retention.SodiumModerate != 1500 {
		t.Fatalf("untouched fields should keep defaults, got %v", tables.Retention.SodiumModerate)
	}
	if tables.Trends.ChangeThreshold != 0.25 {
		t.Fatalf("expected trends overlay, got %v", tables.Trends.ChangeThreshold)
	}
	if len(tables.Food.Overrides) != 4 {
		t.Fatalf("food overrides should keep defaults, got %d", len(tables.Food.Overrides))
	}
}

func TestLoadTablesRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, []byte("retention:\n  lowMax: 9\n"), 0644); err != nil {
		t.Fatalf("write tables: %v", err)
	}
	_, err := LoadTables(path)
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Op != "engine.LoadTables" {
		t.Fatalf("unexpected op %q", appErr.Op)
	}
}
