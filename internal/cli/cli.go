// Package cli wires the timeline engine into a cobra command tree.
//
// Command structure:
//
//	roadmap                     # root command
//	├── layout                  # one-shot: compute and print the layout
//	│   ├── --items, -f         # items YAML file
//	│   ├── --zoom              # week|fortnight|month|quarter|year
//	│   ├── --override          # override end date (DD-MM-YYYY)
//	│   └── --output, -o        # json|table
//	├── watch                   # recompute on items-file changes
//	│   └── --items, -f
//	├── --config, -c            # config file (optional)
//	└── --version
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kahu/roadmap/internal/config"
	"github.com/kahu/roadmap/internal/layout"
	"github.com/kahu/roadmap/internal/metrics"
	"github.com/kahu/roadmap/internal/watch"
	"github.com/kahu/roadmap/pkg/types"
)

var configFile string

// BuildCLI assembles the root command.
func BuildCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "roadmap",
		Short: "roadmap: timeline layout for date-ranged roadmap items",
		Long: `roadmap computes a horizontal timeline from date-ranged items:
- non-overlapping row packing (optimal for interval sets)
- calendar period headers at five zoom levels, incl. NZ fiscal years
- pixel coordinates for every item and period`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (optional)")

	rootCmd.AddCommand(buildLayoutCommand())
	rootCmd.AddCommand(buildWatchCommand())

	return rootCmd
}

func buildLayoutCommand() *cobra.Command {
	var itemsFile, zoomFlag, override, output string

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the timeline layout once and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			zoom := cfg.Zoom()
			if zoomFlag != "" {
				if zoom, err = types.ParseZoom(zoomFlag); err != nil {
					return err
				}
			}
			if override == "" {
				override = cfg.Timeline.OverrideEndDate
			}

			records, err := readItems(itemsFile)
			if err != nil {
				return err
			}

			engine := &layout.Engine{Logger: newLogger()}
			result := engine.LayoutRecords(records, cfg.StatusFilter(), zoom, override)

			return printResult(cmd.OutOrStdout(), result, output)
		},
	}

	cmd.Flags().StringVarP(&itemsFile, "items", "f", "", "YAML file containing item records")
	cmd.Flags().StringVar(&zoomFlag, "zoom", "", "zoom level: week, fortnight, month, quarter, year")
	cmd.Flags().StringVar(&override, "override", "", "override end date (DD-MM-YYYY)")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or table")
	cmd.MarkFlagRequired("items")

	return cmd
}

func buildWatchCommand() *cobra.Command {
	var itemsFile string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompute the layout whenever the items file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig()
			if err != nil {
				return err
			}
			return runWatch(cfg, itemsFile)
		},
	}

	cmd.Flags().StringVarP(&itemsFile, "items", "f", "", "YAML file containing item records")
	cmd.MarkFlagRequired("items")

	return cmd
}

func runWatch(cfg *config.Config, itemsFile string) error {
	logger := newLogger()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
		go func() {
			logger.Info("metrics server listening", "port", cfg.Metrics.Port)
			if err := metrics.StartServer(cfg.Metrics.Port); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	engine := &layout.Engine{Logger: logger, Metrics: collector}
	memo := &layout.Memo{Engine: engine}

	var version uint64
	recompute := func() {
		records, err := readItems(itemsFile)
		if err != nil {
			logger.Error("reload failed, keeping previous layout", "error", err)
			return
		}
		version++
		items := engine.Decode(records)
		result := memo.Layout(version, items, cfg.StatusFilter(), cfg.Zoom(), cfg.Timeline.OverrideEndDate)
		logger.Info("layout recomputed",
			"items", len(items),
			"rows", len(result.Rows),
			"periods", len(result.Periods),
			"total_width_px", result.TotalWidthPx)
	}
	recompute()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := &watch.Watcher{
		Path:     itemsFile,
		Debounce: watch.DefaultDebounce,
		Logger:   logger,
		OnChange: recompute,
	}
	if cfg.Watch.DebounceMs > 0 {
		w.Debounce = time.Duration(cfg.Watch.DebounceMs) * time.Millisecond
	}

	err := w.Run(ctx)
	if ctx.Err() != nil {
		logger.Info("shutting down")
		return nil
	}
	return err
}

// readItems loads raw item records from a YAML file. Validation is the
// engine's job; this only decodes the document.
func readItems(path string) ([]types.ItemRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}
	var records []types.ItemRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse items file %s: %w", path, err)
	}
	return records, nil
}

func resolveConfig() (*config.Config, error) {
	if configFile == "" {
		return config.Default(), nil
	}
	return config.Load(configFile)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func printResult(w io.Writer, result types.LayoutResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	case "table":
		printTable(w, result)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}

func printTable(w io.Writer, result types.LayoutResult) {
	if result.Empty() {
		fmt.Fprintln(w, "no items")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PERIOD\tDAYS\tLEFT\tWIDTH")
	for _, p := range result.Periods {
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.0f\n", p.Label, p.Days, p.LeftPx, p.WidthPx)
	}
	fmt.Fprintln(tw, "\nROW\tITEM\tSTART\tEND\tLEFT\tWIDTH")
	rects := make(map[string]types.ItemRect, len(result.ItemRects))
	for _, r := range result.ItemRects {
		rects[r.ItemID] = r
	}
	for ri, row := range result.Rows {
		for _, it := range row.Items {
			r := rects[it.ID]
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%.0f\n",
				ri, it.ID,
				it.Start.Format("02-01-2006"), it.End.Format("02-01-2006"),
				r.LeftPx, r.WidthPx)
		}
	}
	fmt.Fprintf(tw, "\ntotal width\t%.0f px\n", result.TotalWidthPx)
	tw.Flush()
}
