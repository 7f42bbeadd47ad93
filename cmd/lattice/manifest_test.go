package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lattice.toml")
	content := `
[dump]
out = "out/ir"
jobs = 4
cache = true
fixtures = ["declarations", "structured"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if m.Dump.Out != "out/ir" || m.Dump.Jobs != 4 || !m.Dump.Cache {
		t.Errorf("unexpected dump config: %+v", m.Dump)
	}
	if len(m.Dump.Fixtures) != 2 || m.Dump.Fixtures[0] != "declarations" {
		t.Errorf("unexpected fixtures: %v", m.Dump.Fixtures)
	}
}

func TestLoadManifestMissingDefault(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatal(err)
		}
	}()

	m, err := loadManifest("")
	if err != nil {
		t.Fatalf("missing default manifest must not error: %v", err)
	}
	if m.Dump.Out != "" {
		t.Errorf("expected empty config, got %+v", m.Dump)
	}
}

func TestLoadManifestExplicitMissing(t *testing.T) {
	if _, err := loadManifest(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("explicit missing manifest must error")
	}
}

func TestSelectFixtures(t *testing.T) {
	all, err := selectFixtures(nil)
	if err != nil {
		t.Fatalf("selectFixtures(nil): %v", err)
	}
	if len(all) == 0 {
		t.Fatal("empty corpus")
	}

	subset, err := selectFixtures([]string{"structured"})
	if err != nil {
		t.Fatalf("selectFixtures: %v", err)
	}
	if len(subset) != 1 || subset[0].Name != "structured" {
		t.Errorf("unexpected subset: %v", subset)
	}

	if _, err := selectFixtures([]string{"bogus"}); err == nil {
		t.Error("unknown fixture must error")
	}
}
