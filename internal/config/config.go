package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/caseline/config.yaml"

// Config holds all Caseline configuration.
type Config struct {
	Corpus        CorpusConfig        `yaml:"corpus"`
	Keywords      KeywordsConfig      `yaml:"keywords"`
	Timeline      TimelineConfig      `yaml:"timeline"`
	Relationships RelationshipsConfig `yaml:"relationships"`
	Storage       StorageConfig       `yaml:"storage"`
	Output        OutputConfig        `yaml:"output"`
	Server        ServerConfig        `yaml:"server"`
}

type CorpusConfig struct {
	OriginalsDir    string `yaml:"originals_dir"`
	SummariesDir    string `yaml:"summaries_dir"`
	IDPattern       string `yaml:"id_pattern"`
	SkipHeaderLines int    `yaml:"skip_header_lines"`
}

type KeywordsConfig struct {
	MinOccurrences      int      `yaml:"min_occurrences"`
	MinLength           int      `yaml:"min_length"`
	BlacklistSubstrings []string `yaml:"blacklist_substrings"`
	ExcludeYears        bool     `yaml:"exclude_years"`
}

type TimelineConfig struct {
	MinYear    int    `yaml:"min_year"`
	CutoffDate string `yaml:"cutoff_date"`
}

type RelationshipsConfig struct {
	Threshold    float64 `yaml:"threshold"`
	MaxNeighbors int     `yaml:"max_neighbors"`
}

type StorageConfig struct {
	Path       string `yaml:"path"`
	SQLiteFile string `yaml:"sqlite_file"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// IDRegexp compiles the document ID extraction pattern.
func (c *Config) IDRegexp() (*regexp.Regexp, error) {
	re, err := regexp.Compile(c.Corpus.IDPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid corpus.id_pattern %q: %w", c.Corpus.IDPattern, err)
	}
	return re, nil
}

// CutoffTime parses the timeline cutoff date. Canonical timestamps at or
// after the cutoff are treated as invalid.
func (c *Config) CutoffTime() (time.Time, error) {
	t, err := time.Parse("2006-01-02", c.Timeline.CutoffDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timeline.cutoff_date %q: %w", c.Timeline.CutoffDate, err)
	}
	return t, nil
}

// DatabasePath resolves the SQLite file location, expanding a leading ~.
func (c *Config) DatabasePath() (string, error) {
	path, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(path, c.Storage.SQLiteFile), nil
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := expandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
