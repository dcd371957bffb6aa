package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/averlane/rrestool/internal/utils"
	"github.com/averlane/rrestool/pkg/rres"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <container>",
	Short: "Print the container header and resource directory",
	Long: `Info reads the container header and walks the resource directory, printing
one line per entry. Payload bytes are never read, so this is fast even for
large containers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		slog.Debug("Inspecting container", "path", path)

		type row struct {
			entry rres.EntryHeader
			index int
		}

		var rows []row
		var totalStored int64

		hdr, err := rres.Walk(path, func(entry rres.EntryHeader) error {
			rows = append(rows, row{entry: entry, index: len(rows)})
			totalStored += int64(entry.StoredSize)
			return nil
		})
		if err != nil {
			return fmt.Errorf("inspecting container: %w", err)
		}

		fmt.Printf("Container: %s\n", path)
		fmt.Printf("Signature: %s\n", hdr.Signature[:])
		fmt.Printf("Version: 0x%04x\n", hdr.Version)
		fmt.Printf("Resources: %d (%s stored)\n\n", hdr.Count, utils.Bytes(totalStored))

		if len(rows) == 0 {
			return nil
		}

		fmt.Printf("%-5s %-6s %-8s %-12s %-12s %-12s %s\n",
			"Index", "ID", "Type", "Compression", "Stored", "Uncompressed", "Params")
		fmt.Println(strings.Repeat("-", 80))

		for _, r := range rows {
			e := r.entry
			fmt.Printf("%-5d %-6d %-8s %-12s %-12s %-12s %d,%d,%d,%d\n",
				r.index, e.ID, e.DataType, e.Compression,
				utils.Bytes(int64(e.StoredSize)), utils.Bytes(int64(e.UncompressedSize)),
				e.Param1, e.Param2, e.Param3, e.Param4)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
