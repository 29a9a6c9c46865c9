package cli

import "database/sql"

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AnalyzeCommand — run the full corpus analysis and write the JSON data set.
type AnalyzeCommand struct {
	OriginalsDir   string `long:"originals" description:"Override original documents directory"`
	SummariesDir   string `long:"summaries" description:"Override summaries/keywords directory"`
	OutputDir      string `long:"output" description:"Override output directory"`
	MinOccurrences int    `long:"min-occurrences" description:"Override keyword occurrence threshold"`

	globals *GlobalFlags
	version string
}

// RelateCommand — annotate keyword timelines with related-document links.
type RelateCommand struct {
	OutputDir    string  `long:"output" description:"Override output directory"`
	Threshold    float64 `long:"threshold" description:"Override similarity threshold"`
	MaxNeighbors int     `long:"max-neighbors" description:"Override neighbors kept per direction"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show catalog statistics and configuration summary.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// SearchCommand — full-text search over document summaries.
type SearchCommand struct {
	Limit  int `long:"limit" description:"Maximum results" default:"10"`
	Offset int `long:"offset" description:"Skip first N results" default:"0"`

	globals *GlobalFlags
	version string
}

// ServeCommand — serve the output directory to the timeline viewer.
type ServeCommand struct {
	Host string `long:"host" description:"Override listen host"`
	Port int    `long:"port" description:"Override listen port"`
	Dir  string `long:"dir" description:"Override directory to serve"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete the whole catalog with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
	db      *sql.DB // injectable for testing; nil means open configured DB
}
