package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/averlane/rrestool/pkg/rres"
)

const containersDDL = `CREATE TABLE IF NOT EXISTS containers (
    path TEXT PRIMARY KEY,
    signature TEXT NOT NULL,
    version INTEGER NOT NULL,
    resource_count INTEGER NOT NULL,
    scanned_at TEXT NOT NULL
)`

const resourcesDDL = `CREATE TABLE IF NOT EXISTS resources (
    container TEXT NOT NULL,
    id INTEGER NOT NULL,
    idx INTEGER NOT NULL,
    data_type TEXT NOT NULL,
    compression TEXT NOT NULL,
    stored_size INTEGER NOT NULL,
    uncompressed_size INTEGER NOT NULL,
    param1 INTEGER NOT NULL,
    param2 INTEGER NOT NULL,
    param3 INTEGER NOT NULL,
    param4 INTEGER NOT NULL,
    PRIMARY KEY (container, idx),
    FOREIGN KEY (container) REFERENCES containers(path)
)`

// CreateSchema creates the catalog tables if they do not exist yet
func (c *Catalog) CreateSchema(ctx context.Context) error {
	for _, ddl := range []string{containersDDL, resourcesDDL} {
		if _, err := c.Exec(ctx, ddl); err != nil {
			return fmt.Errorf("creating catalog schema: %w", err)
		}
	}
	return nil
}

// ResourceRow is one catalogued directory entry
type ResourceRow struct {
	Container        string
	ID               uint16
	Index            int
	DataType         string
	Compression      string
	StoredSize       uint32
	UncompressedSize uint32
	Params           [4]uint32
}

// ContainerRow is one catalogued container file
type ContainerRow struct {
	Path          string
	Version       uint16
	ResourceCount uint16
	ScannedAt     string
}

// ScanContainer walks the directory of the container at path (headers only,
// payloads are never read) and records one row per entry. Re-scanning a path
// replaces its previous rows inside the same transaction.
func (c *Catalog) ScanContainer(ctx context.Context, path string) (int, error) {
	if err := c.CreateSchema(ctx); err != nil {
		return 0, err
	}

	tx, err := c.BeginTx(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM resources WHERE container = ?`, path); err != nil {
		return 0, fmt.Errorf("clearing previous scan of %s: %w", path, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO resources
		(container, id, idx, data_type, compression, stored_size, uncompressed_size, param1, param2, param3, param4)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	index := 0
	hdr, err := rres.Walk(path, func(entry rres.EntryHeader) error {
		_, err := stmt.ExecContext(ctx,
			path, entry.ID, index,
			entry.DataType.String(), entry.Compression.String(),
			entry.StoredSize, entry.UncompressedSize,
			entry.Param1, entry.Param2, entry.Param3, entry.Param4)
		if err != nil {
			return fmt.Errorf("inserting resource %d: %w", entry.ID, err)
		}
		index++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("scanning container %s: %w", path, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO containers
		(path, signature, version, resource_count, scanned_at) VALUES (?, ?, ?, ?, ?)`,
		path, string(hdr.Signature[:]), hdr.Version, hdr.Count,
		time.Now().UTC().Format(time.RFC3339)); err != nil {
		return 0, fmt.Errorf("recording container %s: %w", path, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing scan of %s: %w", path, err)
	}

	slog.Debug("Container catalogued", "path", path, "resources", index)

	return index, nil
}

// ListContainers returns every catalogued container
func (c *Catalog) ListContainers(ctx context.Context) ([]ContainerRow, error) {
	rows, err := c.Query(ctx, `SELECT path, version, resource_count, scanned_at FROM containers ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing containers: %w", err)
	}
	defer rows.Close()

	var containers []ContainerRow
	for rows.Next() {
		var row ContainerRow
		if err := rows.Scan(&row.Path, &row.Version, &row.ResourceCount, &row.ScannedAt); err != nil {
			return nil, fmt.Errorf("scanning container row: %w", err)
		}
		containers = append(containers, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating container rows: %w", err)
	}

	return containers, nil
}

// ListResources returns the catalogued entries of one container in file order
func (c *Catalog) ListResources(ctx context.Context, container string) ([]ResourceRow, error) {
	rows, err := c.Query(ctx, `SELECT container, id, idx, data_type, compression,
		stored_size, uncompressed_size, param1, param2, param3, param4
		FROM resources WHERE container = ? ORDER BY idx`, container)
	if err != nil {
		return nil, fmt.Errorf("listing resources of %s: %w", container, err)
	}
	defer rows.Close()

	var resources []ResourceRow
	for rows.Next() {
		var row ResourceRow
		if err := rows.Scan(&row.Container, &row.ID, &row.Index, &row.DataType, &row.Compression,
			&row.StoredSize, &row.UncompressedSize,
			&row.Params[0], &row.Params[1], &row.Params[2], &row.Params[3]); err != nil {
			return nil, fmt.Errorf("scanning resource row: %w", err)
		}
		resources = append(resources, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resource rows: %w", err)
	}

	return resources, nil
}
