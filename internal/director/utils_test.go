package director

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestGenerateScenePath(t *testing.T) {
	path := GenerateScenePath("scenes")

	if !strings.HasPrefix(filepath.Base(path), "scene_") || filepath.Ext(path) != ".yaml" {
		t.Errorf("unexpected name: %s", path)
	}
	if filepath.Dir(path) != "scenes" {
		t.Errorf("path should be in scenes: %s", path)
	}

	t.Logf("Generated path: %s", path)
}

func TestFindLatestScene(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		"scene_2026-02-12_10-00-00.yaml",
		"scene_2026-02-13_01-00-00.yaml",
		"scene_2026-02-11_15-30-00.yaml",
	}

	for i, name := range files {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte("version: \"1.0\"\n"), 0644); err != nil {
			t.Fatal(err)
		}
		mod := time.Now().Add(time.Duration(i-5) * time.Minute)
		if i == 1 {
			mod = time.Now()
		}
		os.Chtimes(p, mod, mod)
	}

	latest, err := FindLatestScene(dir)
	if err != nil {
		t.Fatalf("FindLatestScene failed: %v", err)
	}
	if filepath.Base(latest) != files[1] {
		t.Errorf("Expected %s, got %s", files[1], latest)
	}
}

func TestFindLatestSceneEmpty(t *testing.T) {
	if _, err := FindLatestScene(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}
}
