package director

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/sitemotion/internal/system"
)

// GenerateScenePath creates a timestamped scene filename in dir
func GenerateScenePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scene_%s.yaml", timestamp))
}

// FindLatestScene finds the most recent scene file in dir
func FindLatestScene(dir string) (string, error) {
	return system.FindLatest(dir, ".yaml", ".yml")
}
