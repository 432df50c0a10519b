package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"boxplot/adapters/chart"
	"boxplot/adapters/excel"
	"boxplot/adapters/export"
	"boxplot/adapters/stats/engine"
	"boxplot/domain/boxplot"
	"boxplot/internal/dataset"
	"boxplot/internal/errors"
	"boxplot/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "boxplot-cli",
		Short:         "Five-number summaries and box plots from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newSummaryCmd(),
		newExportCmd(),
		newSamplesCmd(),
		newGenerateCmd(),
	)
	return rootCmd
}

func newSummaryCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Print the five-number summary of a dataset",
		Long: `Print the five-number summary, fences and outliers of a dataset.

The dataset is read from a .csv, .txt or .xlsx file, or from stdin when no
file is given. Stdin accepts numbers separated by commas, spaces or newlines.

Example: boxplot-cli summary scores.csv --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadData(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			summary, err := summarize(data)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), format, data, summary)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newExportCmd() *cobra.Command {
	var csvPath, pngPath, xlsxPath string

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write CSV, PNG or XLSX exports of a dataset",
		Long: `Write the same exports the web tool offers.

Example: boxplot-cli export sales.xlsx --csv box-plot-data.csv --png box-plot.png`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if csvPath == "" && pngPath == "" && xlsxPath == "" {
				return errors.InvalidInput("Nothing to export: pass --csv, --png or --xlsx")
			}

			data, err := loadData(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			summary, err := summarize(data)
			if err != nil {
				return err
			}

			a := &boxplot.Analysis{Name: "Box Plot", Data: data, Summary: summary}
			exporter := export.NewExporter(chart.DefaultOptions())
			targets := []struct {
				path string
				kind export.Kind
			}{
				{csvPath, export.KindCSV},
				{pngPath, export.KindPNG},
				{xlsxPath, export.KindXLSX},
			}
			for _, t := range targets {
				if t.path == "" {
					continue
				}
				if err := writeExport(exporter, t.path, t.kind, a); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", t.path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Write the CSV report to this path")
	cmd.Flags().StringVar(&pngPath, "png", "", "Write the chart image to this path")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the Excel workbook to this path")
	return cmd
}

func newSamplesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "samples",
		Short: "List the bundled sample datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "INDEX\tNAME\tVALUES\tDESCRIPTION")
			for i, s := range boxplot.Samples() {
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i, s.Name, len(s.Data), s.Description)
			}
			return w.Flush()
		},
	}
}

func newGenerateCmd() *cobra.Command {
	config := testkit.DefaultDatasetConfig()

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a synthetic normal dataset with injected outliers",
		Long: `Print a reproducible synthetic dataset, ready to pipe into summary.

Example: boxplot-cli generate --size 200 --seed 7 | boxplot-cli summary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.Size < 1 {
				return errors.InvalidInput("--size must be at least 1")
			}
			data := testkit.NewDatasetGenerator(config).Dataset()
			_, err := fmt.Fprintln(cmd.OutOrStdout(), dataset.JoinNumbers(data))
			return err
		},
	}

	cmd.Flags().IntVar(&config.Size, "size", config.Size, "Number of values")
	cmd.Flags().Float64Var(&config.Mean, "mean", config.Mean, "Mean of the normal body")
	cmd.Flags().Float64Var(&config.StdDev, "stddev", config.StdDev, "Standard deviation of the normal body")
	cmd.Flags().Float64Var(&config.OutlierRate, "outlier-rate", config.OutlierRate, "Fraction of values pushed far from the mean")
	cmd.Flags().BoolVar(&config.Round, "round", config.Round, "Round values to integers")
	cmd.Flags().Int64Var(&config.Seed, "seed", config.Seed, "Random seed")
	return cmd
}

// loadData reads the file named in args, or free text from stdin
func loadData(stdin io.Reader, args []string) ([]float64, error) {
	if len(args) == 0 {
		raw, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.ParseError("Failed to read stdin", err)
		}
		return dataset.ParseText(string(raw)), nil
	}

	reader, err := excel.NewDataReader(args[0])
	if err != nil {
		return nil, err
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, errors.InvalidInput(fmt.Sprintf("Cannot open %s: %v", filepath.Base(args[0]), err))
	}
	defer f.Close()
	return reader.ReadNumbers(f)
}

func summarize(data []float64) (boxplot.Summary, error) {
	if err := dataset.Validate(data); err != nil {
		return boxplot.Summary{}, err
	}
	return engine.ComputeSummary(data)
}

func printSummary(w io.Writer, format string, data []float64, s boxplot.Summary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Count   int             `json:"count"`
			Summary boxplot.Summary `json:"summary"`
		}{len(data), s})
	case "text", "":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		rows := []struct {
			label string
			value float64
		}{
			{"Minimum", s.Minimum},
			{"Q1", s.FirstQuartile},
			{"Median", s.Median},
			{"Q3", s.ThirdQuartile},
			{"Maximum", s.Maximum},
			{"IQR", s.InterquartileRange},
			{"Lower fence", s.LowerFence},
			{"Upper fence", s.UpperFence},
			{"Whisker min", s.WhiskerMinimum},
			{"Whisker max", s.WhiskerMaximum},
		}
		fmt.Fprintf(tw, "Data points\t%d\n", len(data))
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\n", r.label, dataset.FormatNumber(r.value))
		}
		outliers := "none"
		if len(s.Outliers) > 0 {
			outliers = dataset.JoinNumbers(s.Outliers)
		}
		fmt.Fprintf(tw, "Outliers\t%s\n", outliers)
		return tw.Flush()
	default:
		return errors.InvalidInput(fmt.Sprintf("unknown format %q, use text or json", format))
	}
}

func writeExport(exporter *export.Exporter, path string, kind export.Kind, a *boxplot.Analysis) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "cannot create %s", path)
	}
	if err := exporter.Write(f, kind, a); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return errors.Wrapf(err, "cannot write %s", path)
	}
	return nil
}
