package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/averlane/rrestool/internal/catalog"
	"github.com/averlane/rrestool/internal/utils"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the SQLite catalog from the command line",
	Long: `Query lists catalogued containers or the resource directory of a single
container, as recorded by the catalog command.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		listContainers, err := cmd.Flags().GetBool("containers")
		if err != nil {
			return fmt.Errorf("failed to get containers flag: %w", err)
		}
		container, err := cmd.Flags().GetString("resources")
		if err != nil {
			return fmt.Errorf("failed to get resources flag: %w", err)
		}

		slog.Debug("Query parameters",
			"database", cfg.Database,
			"list-containers", listContainers,
			"resources", container)

		cat, err := catalog.Open(catalog.DefaultOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening catalog: %w", err)
		}
		defer cat.Close()

		// Handle --containers flag
		if listContainers {
			containers, err := cat.ListContainers(ctx)
			if err != nil {
				return fmt.Errorf("listing containers: %w", err)
			}

			if len(containers) == 0 {
				fmt.Println("Catalog is empty. Try running: rrestool catalog <container>")
				return nil
			}

			fmt.Println("Catalogued containers:")
			for _, c := range containers {
				fmt.Printf("  %-40s version=0x%04x resources=%d scanned=%s\n",
					c.Path, c.Version, c.ResourceCount, c.ScannedAt)
			}

			return nil
		}

		// Handle --resources flag
		if container != "" {
			resources, err := cat.ListResources(ctx, container)
			if err != nil {
				return fmt.Errorf("listing resources of %s: %w", container, err)
			}

			if len(resources) == 0 {
				fmt.Printf("No catalogued resources for '%s'\n", container)
				return nil
			}

			fmt.Printf("Resources in '%s':\n", container)
			fmt.Printf("%-5s %-6s %-8s %-12s %-12s %-12s %s\n",
				"Index", "ID", "Type", "Compression", "Stored", "Uncompressed", "Params")
			fmt.Println(strings.Repeat("-", 80))

			for _, r := range resources {
				fmt.Printf("%-5d %-6d %-8s %-12s %-12s %-12s %d,%d,%d,%d\n",
					r.Index, r.ID, r.DataType, r.Compression,
					utils.Bytes(int64(r.StoredSize)), utils.Bytes(int64(r.UncompressedSize)),
					r.Params[0], r.Params[1], r.Params[2], r.Params[3])
			}

			return nil
		}

		return fmt.Errorf("nothing to do: pass --containers or --resources <path>")
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("containers", false, "list catalogued containers")
	queryCmd.Flags().String("resources", "", "list catalogued resources of the given container path")
}
