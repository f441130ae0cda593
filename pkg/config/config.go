// Package config loads and validates the boundary layer's runtime
// configuration, and supports atomic hot-reload from a watched file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultWorkerThreads  = 4
	defaultCacheCapacity  = 100
	defaultTier2SizeBytes = 100 * 1024 * 1024
)

// Config specifies everything the boundary layer needs to run: floor
// grid size, the Tier 3 worker pool, the Tier 1 LRU, and Tier 2
// persistence.
type Config struct {
	// FloorSize is a validated tile grid width/height setting. Floor
	// assembly does not read it: each floor's grid size comes from its
	// tier (floor.Tier.GridSize).
	FloorSize uint32 `yaml:"floorSize" json:"floorSize"`

	// WorkerThreads sizes the Tier 3 generation worker pool.
	WorkerThreads int `yaml:"workerThreads" json:"workerThreads"`

	// CacheCapacity bounds the Tier 1 in-memory LRU.
	CacheCapacity int `yaml:"cacheCapacity" json:"cacheCapacity"`

	// EnableTier2 turns on LevelDB-backed floor persistence.
	EnableTier2 bool `yaml:"enableTier2" json:"enableTier2"`

	// Tier2Path is the on-disk LevelDB directory for Tier 2.
	Tier2Path string `yaml:"tier2Path" json:"tier2Path"`

	// Tier2SizeBytes bounds the Tier 2 store (advisory; enforced by
	// operational tooling, not by this package).
	Tier2SizeBytes int64 `yaml:"tier2SizeBytes" json:"tier2SizeBytes"`

	// EnableWarmup pre-generates a contiguous floor range at startup.
	EnableWarmup bool `yaml:"enableWarmup" json:"enableWarmup"`

	// WarmupCount is how many floors from floor 1 to pre-generate.
	WarmupCount int `yaml:"warmupCount" json:"warmupCount"`
}

// Default returns a Config with the spec's documented defaults.
func Default() Config {
	return Config{
		FloorSize:      16,
		WorkerThreads:  defaultWorkerThreads,
		CacheCapacity:  defaultCacheCapacity,
		EnableTier2:    false,
		Tier2SizeBytes: defaultTier2SizeBytes,
		EnableWarmup:   false,
	}
}

// Load reads and validates a YAML configuration file, filling unset
// fields from Default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse validates YAML configuration bytes, filling unset fields from
// Default. Exported separately from Load for testing without a file.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate checks all configuration constraints.
func (c Config) Validate() error {
	if c.FloorSize == 0 {
		return fmt.Errorf("floorSize must be > 0")
	}
	if c.WorkerThreads < 1 {
		return fmt.Errorf("workerThreads must be >= 1, got %d", c.WorkerThreads)
	}
	if c.CacheCapacity < 1 {
		return fmt.Errorf("cacheCapacity must be >= 1, got %d", c.CacheCapacity)
	}
	if c.EnableTier2 && c.Tier2Path == "" {
		return fmt.Errorf("tier2Path must be set when enableTier2 is true")
	}
	if c.EnableTier2 && c.Tier2SizeBytes <= 0 {
		return fmt.Errorf("tier2SizeBytes must be > 0 when enableTier2 is true")
	}
	if c.EnableWarmup && c.WarmupCount < 1 {
		return fmt.Errorf("warmupCount must be >= 1 when enableWarmup is true")
	}
	return nil
}

// ToYAML serializes the config back to YAML bytes.
func (c Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
