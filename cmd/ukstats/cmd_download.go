package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ukstats/internal/config"
	"ukstats/internal/downloader"
)

var downloadForce bool

var downloadCmd = &cobra.Command{
	Use:   "download [dataset...]",
	Short: "Download ONS source datasets",
	Long: `Download the known ONS source files into the data directory.
Without arguments every dataset is fetched; pass dataset keys to fetch
a subset. Existing files are kept unless --force is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.EnsureDataDir(cfg)
		if err != nil {
			return fmt.Errorf("ensure data directory: %w", err)
		}
		dl := downloader.New(filepath.Join(dir, "downloads"), logger)

		if len(args) == 0 {
			paths, err := dl.FetchAll(cmd.Context(), downloadForce)
			logger.Infow("download finished", "fetched", len(paths))
			return err
		}

		for _, key := range args {
			dataset, ok := downloader.DatasetByKey(key)
			if !ok {
				return fmt.Errorf("unknown dataset: %s", key)
			}
			if _, err := dl.Fetch(cmd.Context(), dataset, downloadForce); err != nil {
				return err
			}
		}
		return nil
	},
}

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "List the known ONS datasets",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, d := range downloader.Datasets {
			fmt.Printf("%-28s %s\n", d.Key, d.Description)
		}
		return nil
	},
}

func init() {
	downloadCmd.Flags().BoolVar(&downloadForce, "force", false, "re-download existing files")
	rootCmd.AddCommand(downloadCmd, datasetsCmd)
}
