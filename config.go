package bvh

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the tree's tunables.
type Config struct {
	// FatMargin is the margin given to shapes created by tooling on top of the tree.
	// The tree itself always asks the collider for its fat bounds.
	FatMargin float64 `yaml:"fat_margin"`
	// PoolCapacity caps the number of nodes. 0 means the pool grows without limit.
	// A tree of n colliders needs 2n-1 nodes.
	PoolCapacity int `yaml:"pool_capacity"`
	// PoolChunk is how many nodes the pool adds when it runs dry.
	PoolChunk int `yaml:"pool_chunk"`
	// PoolPrewarm is how many nodes are allocated up front.
	PoolPrewarm int `yaml:"pool_prewarm"`
	// DebugDraw makes Update render the tree when a drawer is installed.
	DebugDraw bool `yaml:"debug_draw"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		FatMargin:   DefaultFatMargin,
		PoolChunk:   pooledBufferSize,
		PoolPrewarm: pooledBufferSize,
		DebugDraw:   true,
	}
}

// Validate rejects negative sizes.
func (c Config) Validate() error {
	switch {
	case c.FatMargin < 0:
		return errors.Errorf("bvh: fat_margin must not be negative, got %v", c.FatMargin)
	case c.PoolCapacity < 0:
		return errors.Errorf("bvh: pool_capacity must not be negative, got %d", c.PoolCapacity)
	case c.PoolChunk < 0:
		return errors.Errorf("bvh: pool_chunk must not be negative, got %d", c.PoolChunk)
	case c.PoolPrewarm < 0:
		return errors.Errorf("bvh: pool_prewarm must not be negative, got %d", c.PoolPrewarm)
	}
	return nil
}

// ParseConfig decodes YAML on top of DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "bvh: parse config")
	}
	return cfg, cfg.Validate()
}

// LoadConfig reads a YAML config file. An empty path yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), errors.Wrapf(err, "bvh: read config %s", path)
	}
	return ParseConfig(data)
}
