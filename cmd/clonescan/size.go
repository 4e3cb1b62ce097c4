package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/clonescan/internal/output"
	"github.com/panbanda/clonescan/internal/progress"
	"github.com/panbanda/clonescan/pkg/analyzer/size"
)

func sizeCmd() *cli.Command {
	return &cli.Command{
		Name:      "size",
		Usage:     "Flag oversized files and classes by token count",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "file-tokens",
				Usage: "Whole-file token threshold",
			},
			&cli.IntFlag{
				Name:  "class-tokens",
				Usage: "Per-class token threshold",
			},
			&cli.IntFlag{
				Name:  "top",
				Usage: "Show top N findings of each kind (0 = all)",
			},
		},
		Action: runSizeCmd,
	}
}

func runSizeCmd(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet("file-tokens") {
		cfg.Thresholds.LargeFileTokens = c.Int("file-tokens")
	}
	if c.IsSet("class-tokens") {
		cfg.Thresholds.LargeClassTokens = c.Int("class-tokens")
	}
	if c.IsSet("top") {
		cfg.Thresholds.TopN = c.Int("top")
	}

	files, err := collectFiles(c, cfg)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		color.Yellow("No source files found")
		return nil
	}

	sizeAnalyzer := size.New(
		size.WithLargeFileTokens(cfg.Thresholds.LargeFileTokens),
		size.WithLargeClassTokens(cfg.Thresholds.LargeClassTokens),
		size.WithTopN(cfg.Thresholds.TopN),
	)

	tracker := progress.NewTracker("Measuring sizes...", len(files))
	analysis, err := sizeAnalyzer.AnalyzeWithProgress(files, tracker.Tick)
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

	return formatter.Output(output.SizeReport(analysis))
}
