// Command shipvoid-report runs one reconciliation and writes the result as
// JSON, CSV, XLSX or a PDF summary.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/discovery"
	"shipvoid-backend/internal/logging"
	"shipvoid-backend/internal/models"
	"shipvoid-backend/internal/remote"
	"shipvoid-backend/internal/report"
	"shipvoid-backend/internal/services"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	forecast   string
	legacy     string
	sourceDir  string
	legacyDir  string
	format     string
	out        string
	remote     bool
}

func newRootCmd(fs afero.Fs, stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "shipvoid-report",
		Short: "Reconcile the Shipvoid forecast with the event history and write a report",
		Long: `Reconcile the newest Shipvoid forecast workbook with the legacy event
history and write one row per container.

Sources are either given as files (--forecast, --legacy) or discovered in
folders (--source-dir, --legacy-dir) the same way the dashboard does.`,
		Example: `  shipvoid-report --forecast "Shipvoid 01-10-2026_0600.xlsm" --legacy Legacy.csv --format csv --out containers.csv
  shipvoid-report --source-dir /mnt/share --format pdf --out summary.pdf`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), fs, stdout, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configPath, "config", config.DefaultConfigFile, "path to the YAML config file")
	f.StringVar(&opts.forecast, "forecast", "", "forecast workbook to read")
	f.StringVar(&opts.legacy, "legacy", "", "event history CSV to read")
	f.StringVar(&opts.sourceDir, "source-dir", "", "folder to discover the forecast in")
	f.StringVar(&opts.legacyDir, "legacy-dir", "", "folder to discover the event history in")
	f.StringVar(&opts.format, "format", "json", "output format: json, csv, xlsx or pdf")
	f.StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	f.BoolVar(&opts.remote, "remote", false, "sync the newest extracts from the configured bucket first")
	cmd.MarkFlagsMutuallyExclusive("forecast", "source-dir")
	cmd.MarkFlagsMutuallyExclusive("legacy", "legacy-dir")
	return cmd
}

func run(ctx context.Context, fs afero.Fs, stdout io.Writer, opts *options) error {
	format := strings.ToLower(opts.format)
	switch format {
	case "json", "csv", "xlsx", "pdf":
	default:
		return fmt.Errorf("unsupported format %q", opts.format)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	// A file given directly is its own "folder"; match it with any name.
	if opts.forecast != "" {
		cfg.Sources.ShipvoidPath = opts.forecast
		cfg.Sources.ShipvoidPattern = "*"
		cfg.Sources.ShipvoidFallbackPatterns = nil
	} else if opts.sourceDir != "" {
		cfg.Sources.ShipvoidPath = opts.sourceDir
	}
	if opts.legacy != "" {
		cfg.Sources.LegacyPath = opts.legacy
		cfg.Sources.LegacyPattern = "*"
	} else if opts.legacyDir != "" {
		cfg.Sources.LegacyPath = opts.legacyDir
	}

	var syncer services.RemoteSyncer
	if opts.remote {
		store, err := remote.New(ctx, cfg.Remote, fs)
		if err != nil {
			return fmt.Errorf("remote sync: %w", err)
		}
		syncer = store
	}

	loader := services.NewLoadService(services.NewSourceSettings(cfg), discovery.NewFinder(fs), syncer, nil, cfg.Sources.DownloadDir)
	result, err := loader.Run(ctx, services.LoadOptions{})
	if err != nil {
		return err
	}

	log := logging.Component("Report")
	log.Infof("Total containers: %d (In House %d, CrossDock %d)", result.Stats.Total, result.Stats.InHouse, result.Stats.CrossDock)
	log.Infof("At risk: %d, potential cost %s", result.Stats.AtRiskCount, result.Stats.PotentialCost.StringFixed(2))

	w := stdout
	if opts.out != "" {
		file, err := fs.Create(opts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer file.Close()
		w = file
	}
	if err := writeReport(w, format, result); err != nil {
		return fmt.Errorf("write %s report: %w", format, err)
	}
	if opts.out != "" {
		log.Infof("Report saved to %s", opts.out)
	}
	return nil
}

func writeReport(w io.Writer, format string, r *models.LoadResult) error {
	switch format {
	case "csv":
		return report.WriteCSV(w, r.Data)
	case "xlsx":
		return report.WriteXLSX(w, r)
	case "pdf":
		data, err := report.SummaryPDF(r)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
}

func main() {
	// report output may go to stdout
	logging.Default().SetOutput(os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(afero.NewOsFs(), os.Stdout).ExecuteContext(ctx); err != nil {
		logging.Component("Report").Error(err)
		cancel()
		os.Exit(1)
	}
}
