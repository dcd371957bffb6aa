package export

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/averlane/rrestool/pkg/rres"
)

func writeContainer(t *testing.T, name string, entries []rres.EntryHeader, payloads [][]byte) string {
	t.Helper()

	var buf bytes.Buffer
	hdr := rres.FileHeader{Signature: rres.Signature, Version: 0x0100, Count: uint16(len(entries))}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatalf("write file header: %v", err)
	}

	for i, e := range entries {
		if err := binary.Write(&buf, binary.LittleEndian, e); err != nil {
			t.Fatalf("write entry header: %v", err)
		}
		buf.Write(payloads[i])
	}

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write container: %v", err)
	}
	return path
}

func TestExportByID(t *testing.T) {
	payload := []byte("hello resources")
	containerPath := writeContainer(t, "game.rres",
		[]rres.EntryHeader{
			{ID: 1, DataType: rres.TypeRaw, StoredSize: 4, UncompressedSize: 4},
			{ID: 2, DataType: rres.TypeText, StoredSize: uint32(len(payload)), UncompressedSize: uint32(len(payload))},
		},
		[][]byte{{0, 0, 0, 0}, payload},
	)

	outDir := t.TempDir()
	exporter := NewExporter(ContainerLoader{}, outDir)

	outputPath, err := exporter.ExportByID(containerPath, 2)
	if err != nil {
		t.Fatalf("export by id: %v", err)
	}

	if filepath.Base(outputPath) != "game_2.txt" {
		t.Fatalf("output name mismatch: got %s", filepath.Base(outputPath))
	}

	written, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Fatalf("exported bytes mismatch: got %q", written)
	}
}

func TestExportFirst(t *testing.T) {
	containerPath := writeContainer(t, "game.rres",
		[]rres.EntryHeader{
			{ID: 9, DataType: rres.TypeRaw, StoredSize: 3, UncompressedSize: 3},
		},
		[][]byte{{1, 2, 3}},
	)

	exporter := NewExporter(ContainerLoader{}, t.TempDir())

	outputPath, err := exporter.ExportFirst(containerPath)
	if err != nil {
		t.Fatalf("export first: %v", err)
	}
	if filepath.Base(outputPath) != "game_9.raw" {
		t.Fatalf("output name mismatch: got %s", filepath.Base(outputPath))
	}
}

func TestExportAll(t *testing.T) {
	containerPath := writeContainer(t, "assets.rres",
		[]rres.EntryHeader{
			{ID: 1, DataType: rres.TypeRaw, StoredSize: 2, UncompressedSize: 2},
			{ID: 2, DataType: rres.TypeWave, StoredSize: 2, UncompressedSize: 2},
			{ID: 3, DataType: rres.TypeVertex, StoredSize: 2, UncompressedSize: 2},
		},
		[][]byte{{1, 1}, {2, 2}, {3, 3}},
	)

	outDir := t.TempDir()
	exporter := NewExporter(ContainerLoader{}, outDir)

	var calls int
	count, err := exporter.ExportAll(containerPath, func(current, total int, description string) {
		calls++
		if total != 3 {
			t.Fatalf("progress total mismatch: got %d", total)
		}
	})
	if err != nil {
		t.Fatalf("export all: %v", err)
	}
	if count != 3 || calls != 3 {
		t.Fatalf("export count mismatch: count=%d calls=%d", count, calls)
	}

	for _, name := range []string{"assets_1.raw", "assets_2.wav", "assets_3.vtx"} {
		if _, err := os.Stat(filepath.Join(outDir, name)); err != nil {
			t.Fatalf("missing exported file %s: %v", name, err)
		}
	}
}

func TestExportMissingResource(t *testing.T) {
	containerPath := writeContainer(t, "game.rres",
		[]rres.EntryHeader{
			{ID: 1, DataType: rres.TypeRaw, StoredSize: 1, UncompressedSize: 1},
		},
		[][]byte{{0}},
	)

	exporter := NewExporter(ContainerLoader{}, t.TempDir())

	if _, err := exporter.ExportByID(containerPath, 99); err == nil {
		t.Fatal("expected error for missing resource")
	}
}
