package levels

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var levelsFS embed.FS

//go:embed scripts/*.tengo
var scriptsFS embed.FS

// Load reads a level spec by name. Disk copies shadow the embedded defaults
// so edited levels take effect without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanLevelPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return levelsFS.ReadFile(clean)
}

// LoadLevel loads and parses a level spec in one step.
func LoadLevel(name string) (*Spec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("levels: load %q: %w", name, err)
	}
	return Parse(data)
}

// LoadScript reads a trigger script, preferring a disk copy.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return scriptsFS.ReadFile(clean)
}

func cleanLevelPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".yaml") && !strings.HasSuffix(s, ".yml") {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, "levels/scripts/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "levels/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}
	return fmt.Sprintf("scripts/%s", s)
}

func diskPath(clean string) string {
	return filepath.Join("levels", filepath.FromSlash(clean))
}
