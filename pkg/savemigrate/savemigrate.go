// Package savemigrate migrates versioned save files forward: each save
// carries a version field, and migration steps transform v(N) -> v(N+1)
// sequentially until the save reaches CurrentSaveVersion. Old saves are
// never discarded; unknown future versions are rejected rather than
// downgraded.
package savemigrate

import (
	"encoding/json"
	"fmt"
)

// CurrentSaveVersion is the save format version new saves are written at.
const CurrentSaveVersion = 3

// MinSupportedVersion is the oldest save version that can be migrated.
const MinSupportedVersion = 1

// ErrorKind distinguishes the ways a migration attempt can fail.
type ErrorKind int

const (
	ErrFutureVersion ErrorKind = iota
	ErrTooOldVersion
	ErrInvalidFormat
	ErrMigrationStepFailed
)

// MigrationError describes why a migration attempt failed.
type MigrationError struct {
	Kind         ErrorKind
	SaveVersion  uint32
	MaxSupported uint32
	MinSupported uint32
	FromVersion  uint32
	Detail       string
}

func (e *MigrationError) Error() string {
	switch e.Kind {
	case ErrFutureVersion:
		return fmt.Sprintf("save version %d is newer than max supported %d", e.SaveVersion, e.MaxSupported)
	case ErrTooOldVersion:
		return fmt.Sprintf("save version %d is older than min supported %d", e.SaveVersion, e.MinSupported)
	case ErrInvalidFormat:
		return fmt.Sprintf("invalid save format: %s", e.Detail)
	case ErrMigrationStepFailed:
		return fmt.Sprintf("migration step from version %d failed: %s", e.FromVersion, e.Detail)
	default:
		return "unknown migration error"
	}
}

// Result is the outcome of a migration attempt.
type Result struct {
	Success         bool
	OriginalVersion uint32
	FinalVersion    uint32
	StepsApplied    []string
	Err             *MigrationError
	Data            map[string]any
}

// MigrateSave migrates jsonStr from its current version to
// CurrentSaveVersion, applying each intermediate step in order.
func MigrateSave(jsonStr string) Result {
	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return Result{Err: &MigrationError{Kind: ErrInvalidFormat, Detail: err.Error()}}
	}

	version := extractVersion(data)
	if version == 0 {
		return Result{Err: &MigrationError{Kind: ErrInvalidFormat, Detail: "missing or invalid 'version' field"}}
	}

	if version > CurrentSaveVersion {
		return Result{
			OriginalVersion: version,
			FinalVersion:    version,
			Err:             &MigrationError{Kind: ErrFutureVersion, SaveVersion: version, MaxSupported: CurrentSaveVersion},
		}
	}

	if version < MinSupportedVersion {
		return Result{
			OriginalVersion: version,
			FinalVersion:    version,
			Err:             &MigrationError{Kind: ErrTooOldVersion, SaveVersion: version, MinSupported: MinSupportedVersion},
		}
	}

	if version == CurrentSaveVersion {
		return Result{
			Success:         true,
			OriginalVersion: version,
			FinalVersion:    version,
			StepsApplied:    []string{"No migration needed"},
			Data:            data,
		}
	}

	current := version
	var steps []string
	for current < CurrentSaveVersion {
		desc, err := applyMigrationStep(data, current)
		if err != nil {
			return Result{
				OriginalVersion: version,
				FinalVersion:    current,
				StepsApplied:    steps,
				Err:             &MigrationError{Kind: ErrMigrationStepFailed, FromVersion: current, Detail: err.Error()},
			}
		}
		steps = append(steps, desc)
		current++
		data["version"] = float64(current)
	}

	return Result{
		Success:         true,
		OriginalVersion: version,
		FinalVersion:    current,
		StepsApplied:    steps,
		Data:            data,
	}
}

func extractVersion(data map[string]any) uint32 {
	v, ok := data["version"]
	if !ok {
		return 0
	}
	f, ok := v.(float64)
	if !ok {
		return 0
	}
	return uint32(f)
}

func applyMigrationStep(data map[string]any, fromVersion uint32) (string, error) {
	switch fromVersion {
	case 1:
		return migrateV1ToV2(data)
	case 2:
		return migrateV2ToV3(data)
	default:
		return "", fmt.Errorf("no migration path from version %d", fromVersion)
	}
}

// migrateV1ToV2 adds mastery, specialization, and cosmetics sections and
// removes the deprecated player_level field.
func migrateV1ToV2(data map[string]any) (string, error) {
	delete(data, "player_level")

	if _, ok := data["mastery"]; !ok {
		data["mastery"] = map[string]any{
			"domains":  map[string]any{},
			"total_xp": float64(0),
		}
	}

	if _, ok := data["specialization"]; !ok {
		data["specialization"] = map[string]any{
			"chosen_branches":  []any{},
			"active_synergies": []any{},
		}
	}

	if _, ok := data["equipped_cosmetics"]; !ok {
		data["equipped_cosmetics"] = []any{}
	}

	return "v1->v2: Added mastery, specialization, cosmetics; removed player_level", nil
}

// migrateV2ToV3 adds mutator_history and game_flow_state, recategorizes
// achievements into the v2 format, and adds semantic_tags/socket_data to
// every inventory item.
func migrateV2ToV3(data map[string]any) (string, error) {
	if _, ok := data["mutator_history"]; !ok {
		data["mutator_history"] = map[string]any{
			"completed_mutators":           []any{},
			"highest_difficulty_cleared":   float64(0),
			"total_mutator_floors_cleared": float64(0),
		}
	}

	if _, ok := data["game_flow_state"]; !ok {
		data["game_flow_state"] = "MainMenu"
	}

	if achievements, ok := data["achievements"]; ok {
		if arr, isArray := achievements.([]any); isArray {
			data["achievements"] = map[string]any{
				"format":     "v2",
				"entries":    arr,
				"categories": map[string]any{},
			}
		}
	} else {
		data["achievements"] = map[string]any{
			"format":     "v2",
			"entries":    []any{},
			"categories": map[string]any{},
		}
	}

	if inventory, ok := data["inventory"].(map[string]any); ok {
		if items, ok := inventory["items"].([]any); ok {
			for _, item := range items {
				itemObj, ok := item.(map[string]any)
				if !ok {
					continue
				}
				if _, ok := itemObj["semantic_tags"]; !ok {
					itemObj["semantic_tags"] = []any{}
				}
				if _, ok := itemObj["socket_data"]; !ok {
					itemObj["socket_data"] = nil
				}
			}
		}
	}

	return "v2->v3: Added mutator_history, game_flow_state, achievements_v2, item semantic_tags/socket_data", nil
}

// ValidateSave reports whether jsonStr parses and is at CurrentSaveVersion.
func ValidateSave(jsonStr string) bool {
	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return false
	}
	return extractVersion(data) == CurrentSaveVersion
}

// CreateNewSave returns a fresh save at CurrentSaveVersion for playerName.
// createdAt is the RFC3339 timestamp to stamp both created_at and
// last_modified with (callers supply it since this package never reads
// the system clock).
func CreateNewSave(playerName, createdAt string) map[string]any {
	return map[string]any{
		"version":       float64(CurrentSaveVersion),
		"created_at":    createdAt,
		"last_modified": createdAt,
		"player_name":   playerName,
		"mastery": map[string]any{
			"domains":  map[string]any{},
			"total_xp": float64(0),
		},
		"specialization": map[string]any{
			"chosen_branches":  []any{},
			"active_synergies": []any{},
		},
		"equipped_cosmetics": []any{},
		"inventory": map[string]any{
			"items":          []any{},
			"shards":         float64(0),
			"echo_fragments": float64(0),
		},
		"mutator_history": map[string]any{
			"completed_mutators":           []any{},
			"highest_difficulty_cleared":   float64(0),
			"total_mutator_floors_cleared": float64(0),
		},
		"game_flow_state": "MainMenu",
		"achievements": map[string]any{
			"format":     "v2",
			"entries":    []any{},
			"categories": map[string]any{},
		},
		"stats": map[string]any{
			"highest_floor":        float64(0),
			"total_monsters_slain": float64(0),
			"total_deaths":         float64(0),
			"total_play_time_secs": float64(0),
			"total_damage_dealt":   float64(0),
			"total_shards_earned":  float64(0),
		},
		"settings": map[string]any{
			"master_volume":       1.0,
			"sfx_volume":          1.0,
			"music_volume":        0.7,
			"mouse_sensitivity":   1.0,
			"invert_y":            false,
			"show_damage_numbers": true,
			"minimap_rotation":    true,
		},
	}
}

// GetSaveVersion extracts the version field from jsonStr without fully
// validating it, returning ok=false if parsing fails or version is absent.
func GetSaveVersion(jsonStr string) (uint32, bool) {
	var data map[string]any
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return 0, false
	}
	v, ok := data["version"]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return uint32(f), true
}
