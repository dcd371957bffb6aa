package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/averlane/rrestool/internal/catalog"
	"github.com/averlane/rrestool/internal/utils"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog <container>...",
	Short: "Record container directories into a SQLite catalog",
	Long: `Catalog walks the resource directory of each given container (headers only,
payloads are never read) and records one row per entry into a SQLite
database for offline querying with the query command.

Re-cataloguing a container replaces its previous rows.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		start := time.Now()

		cat, err := catalog.Open(catalog.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()

		var total int64
		for _, path := range args {
			count, err := cat.ScanContainer(ctx, path)
			if err != nil {
				return fmt.Errorf("cataloguing %s: %w", path, err)
			}

			slog.Info("Container catalogued", "path", path, "resources", count)
			total += int64(count)
		}

		fmt.Printf("Catalogued %s resources from %d container(s) in %s\n",
			utils.Number(total), len(args), utils.Duration(time.Since(start)))
		fmt.Println("Try running: rrestool query --containers")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
