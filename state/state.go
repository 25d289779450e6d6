// Package state persists the per-platform rotation cursors between runs.
// Each posting category keeps its own YAML file so the categories advance
// independently.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"SocialAutoPoster/models"
	"SocialAutoPoster/utils"
)

const (
	ramadanStateFile = "post_state.yaml" // legacy name, kept for existing repositories
	fridayStateFile  = "friday_state.yaml"
	dailyStateFile   = "daily_state.yaml"
)

// FileFor returns the state file path for a posting category.
func FileFor(dir string, t models.PostType) string {
	switch t {
	case models.PostTypeFriday:
		return filepath.Join(dir, fridayStateFile)
	case models.PostTypeDaily:
		return filepath.Join(dir, dailyStateFile)
	default:
		return filepath.Join(dir, ramadanStateFile)
	}
}

// Default returns a zeroed rotation state for every publishing platform.
func Default() models.RotationState {
	st := make(models.RotationState, len(models.DefaultPlatforms))
	for _, p := range models.DefaultPlatforms {
		st[string(p)] = &models.PlatformState{}
	}
	return st
}

// Load reads rotation state from path. A missing file yields the default
// state; an unreadable or corrupt file is logged and also yields the
// default, so a damaged state file restarts the rotation instead of
// killing the run. State files written before image rotation existed hold
// a bare integer per platform and are migrated to the current shape.
func Load(path string) models.RotationState {
	st := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			utils.Errorf("error loading state from %s: %v", path, err)
		}
		return st
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		utils.Errorf("error parsing state file %s: %v", path, err)
		return st
	}

	for name, value := range raw {
		ps, ok := st[name]
		if !ok {
			ps = &models.PlatformState{}
			st[name] = ps
		}
		switch v := value.(type) {
		case int:
			// Legacy format: platform -> post index.
			ps.PostIndex = v
		case map[string]interface{}:
			if n, ok := v["post_index"].(int); ok {
				ps.PostIndex = n
			}
			if n, ok := v["image_index"].(int); ok {
				ps.ImageIndex = n
			}
		default:
			utils.Warnf("ignoring malformed state entry for %s in %s", name, path)
		}
	}

	return st
}

// Save writes rotation state atomically: the YAML is written to a temp
// file in the same directory and renamed over the target, so a crash
// mid-write never leaves a truncated state file behind.
func Save(path string, st models.RotationState) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
