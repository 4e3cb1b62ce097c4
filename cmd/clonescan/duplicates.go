package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/clonescan/internal/output"
	"github.com/panbanda/clonescan/internal/progress"
	"github.com/panbanda/clonescan/pkg/analyzer/duplicates"
)

func duplicatesCmd() *cli.Command {
	return &cli.Command{
		Name:      "duplicates",
		Aliases:   []string{"dup", "clones"},
		Usage:     "Detect duplicated code blocks",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "min-size",
				Usage: "Minimum block size in tokens",
			},
			&cli.Float64Flag{
				Name:  "min-similarity",
				Usage: "Similarity threshold for the pairwise strategy (0.0-1.0)",
			},
			&cli.StringFlag{
				Name:  "strategy",
				Usage: "Matching strategy: exact or pairwise",
			},
		},
		Action: runDuplicatesCmd,
	}
}

func runDuplicatesCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("min-size") {
		cfg.Detection.MinSize = c.Int("min-size")
	}
	if c.IsSet("min-similarity") {
		cfg.Detection.MinSimilarity = c.Float64("min-similarity")
	}
	if c.IsSet("strategy") {
		cfg.Detection.Strategy = c.String("strategy")
	}

	strategy, err := duplicates.ForName(cfg.Detection.Strategy)
	if err != nil {
		return err
	}

	files, err := collectFiles(c, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	dupAnalyzer := duplicates.New(
		duplicates.WithStrategy(strategy),
		duplicates.WithMinSize(cfg.Detection.MinSize),
		duplicates.WithMinSimilarity(cfg.Detection.MinSimilarity),
		duplicates.WithQueryOverrides(cfg.Languages.Queries),
	)

	tracker := progress.NewTracker("Detecting duplicates...", len(files))
	analysis, err := dupAnalyzer.AnalyzeWithProgress(files, tracker.Tick)
	if err != nil {
		tracker.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(output.ParseFormat(outputFormat(c, cfg)), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if len(analysis.Groups) == 0 && formatter.Format() == output.FormatText {
		color.Green("No duplicated blocks of %d+ tokens found", cfg.Detection.MinSize)
	}

	return formatter.Output(output.DuplicatesReport(analysis))
}
