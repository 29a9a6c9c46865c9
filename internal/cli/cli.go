package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Analyze *AnalyzeCommand
	Relate  *RelateCommand
	Status  *StatusCommand
	Search  *SearchCommand
	Serve   *ServeCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "caseline"
	parser.LongDescription = "Date extraction, keyword timelines, and document relationship analysis for text corpora."

	cmds := &commands{
		Analyze: &AnalyzeCommand{globals: &globals, version: version},
		Relate:  &RelateCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		Search:  &SearchCommand{globals: &globals, version: version},
		Serve:   &ServeCommand{globals: &globals, version: version},
		Purge:   &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("analyze", "Analyze the corpus and write timeline data", "Scan the corpus, extract dates, build keyword timelines, and write the JSON data set.", cmds.Analyze)
	parser.AddCommand("relate", "Link related documents on each timeline", "Annotate previously written keyword timelines with related-document links.", cmds.Relate)
	parser.AddCommand("status", "Show catalog statistics", "Show catalog statistics, last run, and configuration summary.", cmds.Status)
	parser.AddCommand("search", "Search document summaries", "Full-text search over analyzed document summaries.", cmds.Search)
	parser.AddCommand("serve", "Serve timeline data over HTTP", "Serve the output directory to the timeline viewer over HTTP.", cmds.Serve)
	parser.AddCommand("purge", "Delete ALL catalog data", "Delete ALL catalog data. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the Caseline CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("caseline %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
