package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/clonescan/internal/output"
	"github.com/panbanda/clonescan/internal/progress"
	"github.com/panbanda/clonescan/pkg/analyzer/todos"
)

func todosCmd() *cli.Command {
	return &cli.Command{
		Name:      "todos",
		Aliases:   []string{"markers"},
		Usage:     "Find TODO, FIXME, and similar work markers in comments",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "markers",
				Usage: "Additional marker words to detect",
			},
		},
		Action: runTodosCmd,
	}
}

func runTodosCmd(c *cli.Context) error {
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

	todoAnalyzer := todos.New(todos.WithExtraMarkers(c.StringSlice("markers")...))

	tracker := progress.NewTracker("Scanning for work markers...", len(files))
	analysis, err := todoAnalyzer.AnalyzeWithProgress(files, tracker.Tick)
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

	return formatter.Output(output.TodosReport(analysis))
}
