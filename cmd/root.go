// Package cmd wires the command-line surface: one root command that loads
// a dataset, runs every analysis stage in order, and writes the reports.
package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/datalens/datalens/cleaning"
	"github.com/datalens/datalens/correlation"
	"github.com/datalens/datalens/dataset"
	cfgpkg "github.com/datalens/datalens/internal/config"
	"github.com/datalens/datalens/pkg/errors"
	ourlog "github.com/datalens/datalens/pkg/log"
	"github.com/datalens/datalens/profile"
	"github.com/datalens/datalens/report"
	"github.com/datalens/datalens/stats"
	"github.com/datalens/datalens/visuals"
)

var (
	cfgFile       string
	outputDir     string
	sheetName     string
	outlierMethod string
	withProfile   bool
	verbose       bool
)

var rootCmd = &cobra.Command{
	Use:   "datalens <input>",
	Short: "datalens: automated exploratory data analysis reports",
	Long: `datalens loads a tabular dataset (CSV, TSV, spreadsheet, JSON,
JSONL or parquet), computes summary statistics, missing-value and
duplicate diagnostics, numeric and categorical correlation matrices, and
renders charts, then writes a combined JSON and HTML report.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return run(args[0])
	},
}

// Execute is the entry point called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.datalens/config.yaml)")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory for reports (default \"reports\")")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "spreadsheet sheet name (default first sheet)")
	rootCmd.Flags().StringVar(&outlierMethod, "outlier-method", "", "outlier fence method: iqr or zscore (default iqr)")
	rootCmd.Flags().BoolVarP(&withProfile, "profile", "p", false, "additionally generate the extended profiling report")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose/debug logging")
}

// run executes one full batch: load, compute all summaries, render all
// charts, write reports, in that fixed order.
func run(inputPath string) error {
	cfg, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if outlierMethod != "" {
		cfg.OutlierMethod = outlierMethod
	}
	method, err := cleaning.ParseOutlierMethod(cfg.OutlierMethod)
	if err != nil {
		return err
	}

	outDir, err := filepath.Abs(cfg.OutputDir)
	if err != nil {
		return errors.Wrap(err, "resolve output dir")
	}
	logger, closeLog, err := ourlog.Setup(filepath.Join(outDir, "logs"), ourlog.ToLevel(verbose))
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck
	errors.SetWarningHandler(func(w error) {
		logger.Warn().Err(w).Msg("warning")
	})

	logger.Info().Str("input", inputPath).Msg("starting datalens EDA engine")

	t, err := dataset.Load(inputPath, dataset.Options{Sheet: sheetName})
	if err != nil {
		var unsupported *errors.UnsupportedFormatError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			logger.Error().Str("path", inputPath).Msg("file not found")
		case errors.As(err, &unsupported):
			logger.Error().EmbedObject(unsupported).Msg("unsupported file format")
		default:
			logger.Error().Err(err).Msg("failed to load dataset")
		}
		return err
	}
	logger.Info().
		Str("format", string(t.Format())).
		Int("rows", t.Rows()).
		Int("columns", t.Cols()).
		Msg("dataset loaded")

	numericCorr := correlation.Numeric(t)
	categoricalCorr := correlation.Categorical(t, cfg.MaxUnique)

	renderer := visuals.NewRenderer(outDir, logger)
	charts := renderer.RenderAll(t, numericCorr, categoricalCorr, cfg.MaxUnique)

	rep := &report.Report{
		DatasetSummary: report.DatasetSummary{
			Rows:    t.Rows(),
			Columns: t.Cols(),
			DTypes:  t.DTypes(),
		},
		MissingValues:    cleaning.MissingValueSummary(t),
		Duplicates:       cleaning.DuplicateRowsSummary(t),
		Quality:          cleaning.QualityScore(t),
		Outliers:         cleaning.DetectOutliers(t, method),
		DescriptiveStats: stats.Describe(t),
		Correlation: report.Correlation{
			Numeric:     numericCorr,
			Categorical: categoricalCorr,
		},
		Visuals: charts,
	}
	rep.Finalize(time.Now())
	logger.Info().Msg("report data built successfully")

	jsonPath := filepath.Join(outDir, "report.json")
	if err := report.WriteJSON(rep, jsonPath); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON report")
		return err
	}
	logger.Info().Str("path", jsonPath).Msg("JSON report saved")

	htmlPath := filepath.Join(outDir, "report.html")
	if err := report.WriteHTML(rep, htmlPath); err != nil {
		logger.Error().Err(err).Msg("failed to write HTML report")
		return err
	}
	logger.Info().Str("path", htmlPath).Msg("HTML report saved")

	if withProfile {
		profilePath := filepath.Join(outDir, "profiling_report.html")
		if err := profile.Generate(t, rep, profilePath); err != nil {
			// Extended profiling is best-effort and never fails the run.
			errors.Warn(errors.Wrap(err, "extended profiling report"))
		} else {
			logger.Info().Str("path", profilePath).Msg("profiling report saved")
		}
	}

	logger.Info().Msg("datalens EDA complete")
	return nil
}
