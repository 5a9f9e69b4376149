package commands

import (
	"fmt"

	"duandigest/lib/scrapers/jandan"
	"duandigest/lib/serviceutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(locateCmd)
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Prints the current page number of the source.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to read config", err)
		}
		client, err := cfg.newClient()
		if err != nil {
			serviceutil.Fatal("failed to initialize client", err)
		}

		page, err := jandan.LocateCurrentPage(cmd.Context(), client, cfg.Source.BaseUrl)
		if err != nil {
			serviceutil.Fatal("failed to locate current page", err)
		}
		fmt.Println(page)
		fmt.Println(jandan.BuildURL(cfg.Source.BaseUrl, page))
	},
}
