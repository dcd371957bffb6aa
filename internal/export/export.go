package export

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/averlane/rrestool/pkg/rres"
)

// Loader defines the interface for materializing resources from a container
type Loader interface {
	LoadFirst(path string) (*rres.Resource, error)
	LoadByID(path string, id uint16) (*rres.Resource, error)
}

// ContainerLoader is the default Loader backed by pkg/rres
type ContainerLoader struct{}

func (ContainerLoader) LoadFirst(path string) (*rres.Resource, error) {
	return rres.LoadFirst(path)
}

func (ContainerLoader) LoadByID(path string, id uint16) (*rres.Resource, error) {
	return rres.LoadByID(path, id)
}

// Exporter handles writing materialized resources to disk
type Exporter struct {
	loader    Loader
	outputDir string
}

// NewExporter creates a new resource exporter
func NewExporter(loader Loader, outputDir string) *Exporter {
	return &Exporter{
		loader:    loader,
		outputDir: outputDir,
	}
}

// ProgressCallback is called to report export progress
type ProgressCallback func(current int, total int, description string)

// ExportFirst materializes the first resource of the container and writes it
// to the output directory. Returns the written file path.
func (e *Exporter) ExportFirst(containerPath string) (string, error) {
	res, err := e.loader.LoadFirst(containerPath)
	if err != nil && !errors.Is(err, rres.ErrSizeMismatch) {
		return "", fmt.Errorf("loading first resource: %w", err)
	}
	if errors.Is(err, rres.ErrSizeMismatch) {
		slog.Warn("Resource decompressed with unexpected size, writing anyway", "container", containerPath, "error", err)
	}

	return e.write(containerPath, res)
}

// ExportByID materializes the resource with the given id and writes it to the
// output directory. Returns the written file path.
func (e *Exporter) ExportByID(containerPath string, id uint16) (string, error) {
	res, err := e.loader.LoadByID(containerPath, id)
	if err != nil && !errors.Is(err, rres.ErrSizeMismatch) {
		return "", fmt.Errorf("loading resource %d: %w", id, err)
	}
	if errors.Is(err, rres.ErrSizeMismatch) {
		slog.Warn("Resource decompressed with unexpected size, writing anyway", "container", containerPath, "id", id, "error", err)
	}

	return e.write(containerPath, res)
}

// ExportAll walks the container directory once to collect ids, then
// materializes each resource in turn. Each materialization is its own
// open-scan-close pass over the container.
func (e *Exporter) ExportAll(containerPath string, progressCallback ProgressCallback) (int, error) {
	var ids []uint16
	_, err := rres.Walk(containerPath, func(entry rres.EntryHeader) error {
		ids = append(ids, entry.ID)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking container directory: %w", err)
	}

	exported := 0
	for i, id := range ids {
		outputPath, err := e.ExportByID(containerPath, id)
		if err != nil {
			return exported, fmt.Errorf("exporting resource %d: %w", id, err)
		}

		exported++
		if progressCallback != nil {
			progressCallback(i+1, len(ids), filepath.Base(outputPath))
		}

		slog.Debug("Exported resource", "id", id, "output", outputPath)
	}

	return exported, nil
}

func (e *Exporter) write(containerPath string, res *rres.Resource) (string, error) {
	if err := os.MkdirAll(e.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	stem := strings.TrimSuffix(filepath.Base(containerPath), filepath.Ext(containerPath))
	name := fmt.Sprintf("%s_%d%s", stem, res.ID, extensionFor(res.DataType))
	outputPath := filepath.Join(e.outputDir, name)

	if err := os.WriteFile(outputPath, res.Data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", outputPath, err)
	}

	return outputPath, nil
}

// extensionFor picks an output file extension from the resource data type
func extensionFor(t rres.DataType) string {
	switch t {
	case rres.TypeImage:
		return ".img"
	case rres.TypeWave:
		return ".wav"
	case rres.TypeVertex:
		return ".vtx"
	case rres.TypeText:
		return ".txt"
	default:
		return ".raw"
	}
}
