package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/andresuchdata/outlet-insight/internal/config"
	"github.com/andresuchdata/outlet-insight/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "inventory",
		Usage: "Analyze Inventario/Outlet workbooks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (console or json)",
				Value:   "console",
				EnvVars: []string{"LOG_FORMAT"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.SetOutput(os.Stderr, c.String("log-format"))
			logger.SetLevel(c.String("log-level"))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "validate",
				Usage:     "Check that workbooks contain the Inventario and Outlet sheets",
				ArgsUsage: "FILE...",
				Action:    runValidate,
			},
			{
				Name:      "analyze",
				Usage:     "Process one workbook and print its metrics",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "Print the full analysis as JSON"},
				},
				Action: runAnalyze,
			},
			{
				Name:      "export",
				Usage:     "Write the canonical tables of workbooks as CSV",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					outFlag(),
					uploadFlag(),
					workersFlag(),
				},
				Action: runExport,
			},
			{
				Name:      "compare",
				Usage:     "Process several workbooks concurrently and compare their metrics",
				ArgsUsage: "FILE...",
				Flags: []cli.Flag{
					workersFlag(),
					&cli.BoolFlag{Name: "json", Usage: "Print the comparison as JSON"},
				},
				Action: runCompare,
			},
			{
				Name:  "remote",
				Usage: "Process every workbook of a storage prefix or Drive folder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "from",
						Usage:    "Source of workbooks: storage or drive",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "prefix",
						Usage:   "Object prefix to read workbooks from",
						EnvVars: []string{"STORAGE_INPUT_PREFIX"},
					},
					&cli.StringFlag{
						Name:    "folder",
						Usage:   "Google Drive folder ID containing workbooks",
						EnvVars: []string{"DRIVE_FOLDER_ID"},
					},
					outFlag(),
					uploadFlag(),
					workersFlag(),
				},
				Action: runRemote,
			},
			{
				Name:  "cache",
				Usage: "Manage the Redis result cache",
				Subcommands: []*cli.Command{
					{
						Name:   "clear",
						Usage:  "Remove every cached analysis result",
						Action: runCacheClear,
					},
				},
			},
			{
				Name:      "sheet",
				Usage:     "Dump one raw sheet of a workbook as CSV",
				ArgsUsage: "FILE SHEET",
				Action:    runSheet,
			},
			{
				Name:  "template",
				Usage: "Write an empty workbook with the expected sheets and headers",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "out",
						Usage: "Path of the workbook to create",
						Value: "inventory_template.xlsx",
					},
				},
				Action: runTemplate,
			},
		},
	}
}

func outFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "out",
		Usage:   "Directory for exported CSVs",
		Value:   config.Load().App.OutputDir,
		EnvVars: []string{"APP_OUTPUT_DIR"},
	}
}

func uploadFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:  "upload",
		Usage: "Also upload exported CSVs to object storage",
	}
}

func workersFlag() *cli.IntFlag {
	return &cli.IntFlag{
		Name:    "workers",
		Usage:   "Number of workbooks processed concurrently",
		Value:   runtime.NumCPU(),
		EnvVars: []string{"APP_WORKERS"},
	}
}
