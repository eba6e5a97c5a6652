package rules

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadWithoutPackReturnsBaseline(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if len(c.Technologies) != len(Baseline().Technologies) {
		t.Error("empty pack dir should return the baseline unchanged")
	}
}

func TestLoadOverlaysPackEntries(t *testing.T) {
	dir := t.TempDir()
	writePackFile(t, dir, FileTechnologies, `[
		{"id": "fusion-power", "name": "Cold Fusion", "cost": 25},
		{"id": "jump-gates", "name": "Jump Gates", "cost": 200,
		 "requires": {"techs": ["fusion-power"]},
		 "mods": [{"target": {"kind": 0}, "yield": 0, "pct": 0.2}]}
	]`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	replaced := c.Technology("fusion-power")
	if replaced == nil || replaced.Name != "Cold Fusion" || replaced.Cost != 25 {
		t.Errorf("pack entry did not replace baseline: %+v", replaced)
	}
	if len(replaced.Mods) != 0 {
		t.Error("replacement entry should not inherit baseline modifiers")
	}

	added := c.Technology("jump-gates")
	if added == nil {
		t.Fatal("pack entry was not added")
	}
	if added.Cost != 200 || len(added.Mods) != 1 || added.Mods[0].Pct != 0.2 {
		t.Errorf("added entry parsed wrong: %+v", added)
	}
	if len(added.Requires.Techs) != 1 || added.Requires.Techs[0] != "fusion-power" {
		t.Errorf("added entry requirements parsed wrong: %+v", added.Requires)
	}

	if c.Technology("deep-mining") == nil {
		t.Error("untouched baseline entries should survive the overlay")
	}
}

func TestLoadRejectsInvalidPack(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"broken reference", FileTechnologies, `[{"id": "x", "cost": 10, "requires": {"techs": ["no-such"]}}]`},
		{"missing id", FileBeliefs, `[{"name": "Nameless"}]`},
		{"malformed json", FileCultures, `{not json`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writePackFile(t, dir, tt.file, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("Load() accepted an invalid pack")
			}
		})
	}
}
