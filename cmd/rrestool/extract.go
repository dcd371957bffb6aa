package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/averlane/rrestool/internal/export"
	"github.com/averlane/rrestool/internal/utils"
	"github.com/spf13/cobra"
)

var (
	extractID  uint16
	extractAll bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <container>",
	Short: "Extract resources from a container to disk",
	Long: `Extract materializes resources from a container and writes them to the
output directory, one file per resource, named <container>_<id> with an
extension chosen from the resource's data type.

By default the first resource in the directory is extracted. Use --id to
extract a specific resource, or --all to extract every resource.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		start := time.Now()

		exporter := export.NewExporter(export.ContainerLoader{}, cfg.Output)

		if extractAll {
			var total int
			progress := utils.NewProgress(0, false)

			count, err := exporter.ExportAll(path, func(current int, t int, description string) {
				if total == 0 {
					total = t
					progress = utils.NewProgress(total, !(noProgress || cfg.LogFormat == "json" || cfg.LogLevel == "debug"))
				}
				progress.Update(current, description)
			})
			progress.Finish()
			if err != nil {
				return fmt.Errorf("extracting all resources: %w", err)
			}

			fmt.Printf("Extracted %s resources to %s in %s\n",
				utils.Number(int64(count)), cfg.Output, utils.Duration(time.Since(start)))
			return nil
		}

		var outputPath string
		var err error
		if cmd.Flags().Changed("id") {
			outputPath, err = exporter.ExportByID(path, extractID)
		} else {
			outputPath, err = exporter.ExportFirst(path)
		}
		if err != nil {
			return fmt.Errorf("extracting resource: %w", err)
		}

		slog.Info("Resource extracted", "output", outputPath, "duration", utils.Duration(time.Since(start)))
		fmt.Println(outputPath)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().Uint16Var(&extractID, "id", 0, "extract the resource with this identifier")
	extractCmd.Flags().BoolVar(&extractAll, "all", false, "extract every resource in the container")
}
