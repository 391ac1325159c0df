// Package main provides the CLI entry point for excel-explorer.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lucianoaf8/excel-explorer-go/internal/config"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer"
	"github.com/lucianoaf8/excel-explorer-go/pkg/explorer/output"
)

var (
	outputPath   string
	configPath   string
	pretty       bool
	verbose      bool
	summaryOnly  bool
	sampleRows   int
	maxFormulas  int
	noCrossSheet bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "excel-explorer [input.xlsx]",
		Short: "Analyze Excel workbook structure, data quality, and security",
		Long: `excel-explorer runs a pipeline of analysis modules over an Excel
workbook (structure, data profiling, formulas, visuals, security,
cross-sheet relationships) and outputs a JSON report. Module failures
degrade the report instead of aborting the run.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	rootCmd.Flags().StringVar(&configPath, "config", "", "YAML configuration file")
	rootCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&summaryOnly, "summary", false, "Output only the execution summary")
	rootCmd.Flags().IntVar(&sampleRows, "sample-rows", 0, "Base sample window for data profiling")
	rootCmd.Flags().IntVar(&maxFormulas, "max-formulas", 0, "Cells examined per sheet during formula analysis")
	rootCmd.Flags().BoolVar(&noCrossSheet, "no-cross-sheet", false, "Skip dependency and relationship analysis")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("sample-rows") {
		cfg.Analysis.SampleRows = sampleRows
	}
	if cmd.Flags().Changed("max-formulas") {
		cfg.Analysis.MaxFormulaCheck = maxFormulas
	}
	if noCrossSheet {
		cfg.Analysis.EnableCrossSheet = false
	}

	log, err := buildLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger setup failed: %w", err)
	}
	defer log.Sync()

	crossSheet := cfg.Analysis.EnableCrossSheet
	report, err := explorer.Analyze(args[0], explorer.Options{
		SampleRows:      cfg.Analysis.SampleRows,
		StreamRows:      cfg.Analysis.StreamRows,
		MaxFormulaCheck: cfg.Analysis.MaxFormulaCheck,
		CrossSheet:      &crossSheet,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var jsonData []byte
	if summaryOnly {
		jsonData, err = output.SummaryToJSON(report, pretty)
	} else {
		jsonData, err = output.ToJSON(report, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	fmt.Println(string(jsonData))
	return nil
}

func buildLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}
	return zapCfg.Build()
}
