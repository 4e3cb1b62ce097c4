package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/panbanda/clonescan/pkg/config"
	"github.com/panbanda/clonescan/pkg/scanner"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "clonescan",
		Usage:   "Multi-language duplicate code detection",
		Version: version,
		Description: `Clonescan extracts functions, methods, and classes from source files,
normalizes them into token sequences, and reports duplicated or
near-duplicated blocks across the codebase.

Supports: Go, Python, JavaScript, TypeScript, TSX, C#`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (TOML, YAML, or JSON)",
				EnvVars: []string{"CLONESCAN_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "text",
				Usage:   "Output format: text, json, markdown",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to file",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output",
			},
		},
		Commands: []*cli.Command{
			duplicatesCmd(),
			todosCmd(),
			sizeCmd(),
			analyzeCmd(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}

// getPaths returns paths from positional args, defaulting to ["."]
func getPaths(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

// outputFormat resolves the output format: the --format flag when
// given, the config file value otherwise.
func outputFormat(c *cli.Context, cfg *config.Config) string {
	if !c.IsSet("format") && cfg.Output.Format != "" {
		return cfg.Output.Format
	}
	return c.String("format")
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

// collectFiles scans each path and returns every supported source file.
func collectFiles(c *cli.Context, cfg *config.Config) ([]string, error) {
	scan := scanner.New(cfg)

	var files []string
	for _, path := range getPaths(c) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("invalid path %s: %w", path, err)
		}
		found, err := scan.ScanDir(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to scan directory %s: %w", path, err)
		}
		files = append(files, found...)
	}

	return files, nil
}
