package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/clonescan/internal/output"
	"github.com/panbanda/clonescan/internal/progress"
	"github.com/panbanda/clonescan/pkg/analyzer/duplicates"
	"github.com/panbanda/clonescan/pkg/analyzer/size"
	"github.com/panbanda/clonescan/pkg/analyzer/todos"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"all"},
		Usage:     "Run all analyzers and produce a combined report",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Analyzers to exclude: duplicates, todos, size",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
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

	excludeSet := make(map[string]bool)
	for _, e := range c.StringSlice("exclude") {
		excludeSet[e] = true
	}

	type fullAnalysis struct {
		Duplicates *duplicates.Analysis `json:"duplicates,omitempty"`
		Todos      *todos.Analysis      `json:"todos,omitempty"`
		Size       *size.Analysis       `json:"size,omitempty"`
	}
	var results fullAnalysis

	startTime := time.Now()
	if c.Bool("verbose") {
		color.Cyan("Running full analysis on %d files...\n", len(files))
	}

	if !excludeSet["duplicates"] {
		strategy, err := duplicates.ForName(cfg.Detection.Strategy)
		if err != nil {
			return err
		}
		dupAnalyzer := duplicates.New(
			duplicates.WithStrategy(strategy),
			duplicates.WithMinSize(cfg.Detection.MinSize),
			duplicates.WithMinSimilarity(cfg.Detection.MinSimilarity),
			duplicates.WithQueryOverrides(cfg.Languages.Queries),
		)
		tracker := progress.NewTracker("Detecting duplicates...", len(files))
		results.Duplicates, err = dupAnalyzer.AnalyzeWithProgress(files, tracker.Tick)
		if err != nil {
			tracker.FinishError(err)
			return fmt.Errorf("duplicate analysis failed: %w", err)
		}
		tracker.FinishSuccess()
	}

	if !excludeSet["todos"] {
		tracker := progress.NewTracker("Scanning for work markers...", len(files))
		results.Todos, err = todos.New().AnalyzeWithProgress(files, tracker.Tick)
		if err != nil {
			tracker.FinishError(err)
			return fmt.Errorf("marker scan failed: %w", err)
		}
		tracker.FinishSuccess()
	}

	if !excludeSet["size"] {
		sizeAnalyzer := size.New(
			size.WithLargeFileTokens(cfg.Thresholds.LargeFileTokens),
			size.WithLargeClassTokens(cfg.Thresholds.LargeClassTokens),
			size.WithTopN(cfg.Thresholds.TopN),
		)
		tracker := progress.NewTracker("Measuring sizes...", len(files))
		results.Size, err = sizeAnalyzer.AnalyzeWithProgress(files, tracker.Tick)
		if err != nil {
			tracker.FinishError(err)
			return fmt.Errorf("size analysis failed: %w", err)
		}
		tracker.FinishSuccess()
	}

	if c.Bool("verbose") {
		fmt.Printf("Analysis completed in %s\n\n", time.Since(startTime).Round(time.Millisecond))
	}

	formatter, err := output.NewFormatter(output.ParseFormat(outputFormat(c, cfg)), c.String("output"), cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if formatter.Format() == output.FormatJSON {
		return formatter.Output(results)
	}

	var sections []output.Renderable
	if results.Duplicates != nil {
		sections = append(sections, output.DuplicatesReport(results.Duplicates))
	}
	if results.Todos != nil {
		sections = append(sections, output.TodosReport(results.Todos))
	}
	if results.Size != nil {
		sections = append(sections, output.SizeReport(results.Size))
	}

	return formatter.Output(&output.Report{Title: "Clonescan Report", Sections: sections, Data: results})
}
