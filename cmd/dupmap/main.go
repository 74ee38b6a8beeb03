package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/dupmap/dupmap/pkg/analyzer/duplicates"
	"github.com/dupmap/dupmap/pkg/config"
	"github.com/dupmap/dupmap/pkg/output"
	"github.com/dupmap/dupmap/pkg/progress"
	"github.com/dupmap/dupmap/pkg/report"
	"github.com/dupmap/dupmap/pkg/scanner"
)

var (
	version = "dev"
	commit  = "none"    //nolint:unused // set via ldflags at build time
	date    = "unknown" //nolint:unused // set via ldflags at build time
)

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func main() {
	app := &cli.App{
		Name:    "dupmap",
		Usage:   "Method-level code duplication scanner",
		Version: version,
		Description: `Dupmap extracts every function and method from a source tree, scores
all pairs by normalized token-set similarity, and renders a Mermaid
diagram of the methods worth reviewing.

Supports: Go, Rust, Python, TypeScript, JavaScript, Java, Ruby`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"DUPMAP_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Console output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write console output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			analyzeCmd(),
		},
		DefaultCommand: "analyze",
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"scan"},
		Usage:     "Scan a source tree for near-duplicate methods",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:  "floor",
				Value: 0.30,
				Usage: "Minimum similarity to retain a pair",
			},
			&cli.Float64Flag{
				Name:  "review-threshold",
				Value: 0.75,
				Usage: "Minimum similarity to draw an edge and mark a method for review",
			},
			&cli.IntFlag{
				Name:  "min-tokens",
				Value: 15,
				Usage: "Minimum raw token count for a method to be compared",
			},
			&cli.StringFlag{
				Name:  "report",
				Usage: "Diagram file to write (default from config: duplication_report.mmd)",
			},
			&cli.IntFlag{
				Name:  "top",
				Value: 10,
				Usage: "Number of highest-scoring pairs to print",
			},
		},
		Action: runAnalyze,
	}
}

func runAnalyze(c *cli.Context) error {
	cfg := loadConfig(c)

	if c.IsSet("floor") {
		cfg.Thresholds.SimilarityFloor = c.Float64("floor")
	}
	if c.IsSet("review-threshold") {
		cfg.Thresholds.ReviewThreshold = c.Float64("review-threshold")
	}
	if c.IsSet("min-tokens") {
		cfg.Thresholds.MinTokens = c.Int("min-tokens")
	}
	if c.IsSet("top") {
		cfg.Output.TopPairs = c.Int("top")
	}
	reportFile := cfg.Output.ReportFile
	if c.IsSet("report") {
		reportFile = c.String("report")
	}

	scan := scanner.NewScanner(cfg)
	var files []string
	for _, path := range getPaths(c) {
		found, err := scan.ScanDir(path)
		if err != nil {
			return fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}

	analyzer := duplicates.New(duplicates.WithConfig(cfg.Thresholds))
	defer analyzer.Close()

	tracker := progress.NewTracker("Scanning methods...", len(files))
	analysis, err := analyzer.AnalyzeProjectWithProgress(files, tracker.Tick)
	tracker.FinishSuccess()
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if c.Bool("verbose") {
		for _, skipped := range analysis.Skipped {
			color.Yellow("skipped %s: %s", skipped.Path, skipped.Reason)
		}
	}

	renderer := report.NewMermaid(cfg.Thresholds.ReviewThreshold)
	diagram := renderer.Render(analysis.Methods, analysis.Pairs)
	if err := os.WriteFile(reportFile, []byte(diagram), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := printSummary(c, cfg, analysis); err != nil {
		return err
	}

	color.Green("Mermaid diagram written to %s", reportFile)
	return nil
}

func loadConfig(c *cli.Context) *config.Config {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err == nil {
			return cfg
		}
		color.Yellow("failed to load config %s: %v (using defaults)", path, err)
	}
	return config.LoadOrDefault()
}

func printSummary(c *cli.Context, cfg *config.Config, analysis *duplicates.Analysis) error {
	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(analysis)
	}

	top := analysis.Pairs
	if len(top) > cfg.Output.TopPairs {
		top = top[:cfg.Output.TopPairs]
	}

	var rows [][]string
	for _, p := range top {
		rows = append(rows, []string{
			fmt.Sprintf("%.3f", p.Score),
			fmt.Sprintf("%s (%s:%d)", p.A.Name, filepath.Base(p.A.File), p.A.StartLine),
			fmt.Sprintf("%s (%s:%d)", p.B.Name, filepath.Base(p.B.File), p.B.StartLine),
		})
	}

	table := output.NewTable(
		"Most Similar Method Pairs",
		[]string{"Score", "Method A", "Method B"},
		rows,
		[]string{
			fmt.Sprintf("Methods: %d", analysis.Summary.MethodCount),
			fmt.Sprintf("Pairs >= %.0f%%: %d", cfg.Thresholds.SimilarityFloor*100, analysis.Summary.PairCount),
			fmt.Sprintf("Review >= %.0f%%: %d", cfg.Thresholds.ReviewThreshold*100, analysis.Summary.ReviewPairCount),
		},
		analysis,
	)

	return formatter.Output(table)
}
