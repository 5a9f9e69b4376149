package commands

import (
	"fmt"
	"log/slog"

	"duandigest/lib/export"
	"duandigest/lib/serviceutil"

	"github.com/spf13/cobra"
)

var (
	runPages  int
	runFormat string
)

func init() {
	runCmd.Flags().IntVarP(&runPages, "pages", "p", 0, "How many pages to crawl, overrides source.page_count.")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "The format to attach (txt, html or md), overrides export.format.")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run [--pages <n>] [--format <txt|html|md>]",
	Short: "Runs one digest cycle now: crawl, export and mail.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		if runPages < 0 {
			serviceutil.Fatal("invalid --pages", fmt.Errorf("must be positive, got %d", runPages))
		}
		pages := cfg.Source.PageCount
		if runPages > 0 {
			pages = runPages
		}
		format := cfg.Export.Format
		if runFormat != "" {
			format = runFormat
		}

		svc, err := cfg.newService()
		if err != nil {
			serviceutil.Fatal("failed to initialize digest service", err)
		}

		ctx := serviceutil.SignalContext(cmd.Context())
		result, err := svc.Run(ctx, pages, export.ParseFormat(format))
		if err != nil {
			serviceutil.Fatal("digest run failed", err)
		}
		slog.Info("digest run complete", "run_id", result.RunID, "entries", result.Entries)
		for format, path := range result.Exports {
			fmt.Printf("%s\t%s\n", format, path)
		}
	},
}
