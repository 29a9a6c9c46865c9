package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Corpus: CorpusConfig{
			OriginalsDir:    "Original Files",
			SummariesDir:    "Summary and Keywords",
			IDPattern:       `EFTA\d+`,
			SkipHeaderLines: 5,
		},
		Keywords: KeywordsConfig{
			MinOccurrences:      25,
			MinLength:           3,
			BlacklistSubstrings: DefaultBlacklistSubstrings(),
			ExcludeYears:        true,
		},
		Timeline: TimelineConfig{
			MinYear:    2000,
			CutoffDate: "2025-12-01",
		},
		Relationships: RelationshipsConfig{
			Threshold:    0.5,
			MaxNeighbors: 3,
		},
		Storage: StorageConfig{
			Path:       "~/.config/caseline",
			SQLiteFile: "caseline.db",
		},
		Output: OutputConfig{
			Dir: "data",
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8000,
		},
	}
}
