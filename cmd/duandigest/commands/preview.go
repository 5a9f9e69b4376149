package commands

import (
	"fmt"

	"duandigest/lib/scrapers/jandan"
	"duandigest/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var previewPages int

func init() {
	previewCmd.Flags().IntVarP(&previewPages, "pages", "p", 0, "How many pages to crawl, overrides source.page_count.")
	rootCmd.AddCommand(previewCmd)
}

var previewCmd = &cobra.Command{
	Use:   "preview [--pages <n>]",
	Short: "Crawls and prints the entries that would be mailed, nothing is written or sent.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		pages := cfg.Source.PageCount
		if previewPages > 0 {
			pages = previewPages
		}

		crawler, err := cfg.newCrawler()
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}
		ctx := serviceutil.SignalContext(cmd.Context())
		aggregate, err := crawler.Crawl(ctx, pages)
		if err != nil {
			serviceutil.Fatal("crawl failed", err)
		}

		renderEntries(aggregate.Entries())
	},
}

func renderEntries(entries []jandan.Entry) {
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Author", "Text", "OO", "XX"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Text", WidthMax: 60},
		{Name: "OO", Align: text.AlignRight},
		{Name: "XX", Align: text.AlignRight},
	})
	for _, entry := range entries {
		t.AppendRow(table.Row{entry.ID, entry.Author, entry.Text, entry.LikeCount, entry.UnlikeCount})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d entries", len(entries))})
	t.Render()
}
