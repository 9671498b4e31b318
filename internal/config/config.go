// Package config reads phonosim.toml.
//
// The file is found by walking up from the working directory. Keys left out
// keep their defaults, relative data paths resolve against the directory
// that holds the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"phonosim/internal/score"
)

// FileName is the configuration file looked up by Discover.
const FileName = "phonosim.toml"

// ErrNotFound is returned when an explicitly named config file is missing.
var ErrNotFound = errors.New("config file not found")

// Config is the decoded phonosim.toml plus where it came from.
type Config struct {
	Path string `toml:"-"` // empty when running on defaults
	Root string `toml:"-"`

	Data    DataConfig    `toml:"data"`
	Rank    RankConfig    `toml:"rank"`
	Cluster ClusterConfig `toml:"cluster"`
	Cache   CacheConfig   `toml:"cache"`
}

type DataConfig struct {
	Inventories  string `toml:"inventories"`
	Languages    string `toml:"languages"`
	Features     string `toml:"features"`
	Sizes        string `toml:"sizes"`
	Corpora      string `toml:"corpora"`
	CorpusPrefix string `toml:"corpus_prefix"`
}

type RankConfig struct {
	Scorer                string `toml:"scorer"`
	TopK                  int    `toml:"top_k"`
	HighResourceThreshold int64  `toml:"high_resource_threshold"`
	Jobs                  int    `toml:"jobs"`
}

type ClusterConfig struct {
	MinSize   int     `toml:"min_size"`
	Threshold float64 `toml:"threshold"`
	ClosestK  int     `toml:"closest_k"`
}

type CacheConfig struct {
	Dir string `toml:"dir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Data: DataConfig{
			Inventories:  "data/phoible-phonemes.tsv",
			Languages:    "data/phoible-aggregated.tsv",
			Features:     "data/phoible-segments-features.tsv",
			Sizes:        "data/langsizes.txt",
			Corpora:      "data/wikidata",
			CorpusPrefix: "wikidata.",
		},
		Rank: RankConfig{
			Scorer: string(score.KindF1),
			TopK:   500,
		},
		Cluster: ClusterConfig{
			MinSize:   100,
			Threshold: 0.004,
			ClosestK:  20,
		},
	}
}

// Find walks up from startDir looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Discover loads explicit when it is non-empty, else the nearest FileName
// above startDir, else Default rooted at startDir.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("%s: %w", explicit, ErrNotFound)
			}
			return Config{}, err
		}
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if ok {
		return Load(path)
	}
	cfg := Default()
	root, err := filepath.Abs(startDir)
	if err != nil {
		return Config{}, err
	}
	cfg.Root = root
	return cfg, nil
}

// Load decodes path over Default and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("data", "corpus_prefix") && strings.TrimSpace(cfg.Data.CorpusPrefix) == "" {
		return Config{}, fmt.Errorf("%s: [data].corpus_prefix must not be empty", path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, err
	}
	cfg.Path = abs
	cfg.Root = filepath.Dir(abs)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := score.ParseKind(c.Rank.Scorer); err != nil {
		return fmt.Errorf("[rank].scorer: %w", err)
	}
	if c.Rank.TopK < 0 {
		return fmt.Errorf("[rank].top_k must be >= 0, got %d", c.Rank.TopK)
	}
	if c.Rank.HighResourceThreshold < 0 {
		return fmt.Errorf("[rank].high_resource_threshold must be >= 0, got %d", c.Rank.HighResourceThreshold)
	}
	if c.Rank.Jobs < 0 {
		return fmt.Errorf("[rank].jobs must be >= 0, got %d", c.Rank.Jobs)
	}
	if c.Cluster.MinSize < 0 {
		return fmt.Errorf("[cluster].min_size must be >= 0, got %d", c.Cluster.MinSize)
	}
	if c.Cluster.Threshold < 0 {
		return fmt.Errorf("[cluster].threshold must be >= 0, got %g", c.Cluster.Threshold)
	}
	if c.Cluster.ClosestK < 0 {
		return fmt.Errorf("[cluster].closest_k must be >= 0, got %d", c.Cluster.ClosestK)
	}
	return nil
}

// Resolve makes a configured path absolute against Root.
func (c Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, filepath.FromSlash(p))
}
