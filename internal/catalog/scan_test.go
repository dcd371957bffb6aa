package catalog

import (
	"bytes"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/averlane/rrestool/pkg/rres"
)

func writeContainer(t *testing.T, entries []rres.EntryHeader) string {
	t.Helper()

	var buf bytes.Buffer
	hdr := rres.FileHeader{Signature: rres.Signature, Version: 0x0100, Count: uint16(len(entries))}
	if err := binary.Write(&buf, binary.LittleEndian, hdr); err != nil {
		t.Fatalf("write file header: %v", err)
	}

	for _, e := range entries {
		if err := binary.Write(&buf, binary.LittleEndian, e); err != nil {
			t.Fatalf("write entry header: %v", err)
		}
		buf.Write(make([]byte, e.StoredSize))
	}

	path := filepath.Join(t.TempDir(), "test.rres")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("write container: %v", err)
	}
	return path
}

func TestScanContainer(t *testing.T) {
	ctx := context.Background()

	containerPath := writeContainer(t, []rres.EntryHeader{
		{ID: 1, DataType: rres.TypeRaw, Compression: rres.CompNone, StoredSize: 16, UncompressedSize: 16},
		{ID: 2, DataType: rres.TypeImage, Compression: rres.CompDeflate, StoredSize: 8, UncompressedSize: 64,
			Param1: 320, Param2: 200, Param3: 4, Param4: 1},
	})

	cat, err := Open(DefaultOptions(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer cat.Close()

	count, err := cat.ScanContainer(ctx, containerPath)
	if err != nil {
		t.Fatalf("scan container: %v", err)
	}
	if count != 2 {
		t.Fatalf("scan count mismatch: got %d want 2", count)
	}

	containers, err := cat.ListContainers(ctx)
	if err != nil {
		t.Fatalf("list containers: %v", err)
	}
	if len(containers) != 1 {
		t.Fatalf("container count mismatch: got %d", len(containers))
	}
	if containers[0].Path != containerPath || containers[0].ResourceCount != 2 {
		t.Fatalf("container row mismatch: %+v", containers[0])
	}

	resources, err := cat.ListResources(ctx, containerPath)
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if len(resources) != 2 {
		t.Fatalf("resource count mismatch: got %d", len(resources))
	}

	img := resources[1]
	if img.ID != 2 || img.DataType != "image" || img.Compression != "deflate" {
		t.Fatalf("resource row mismatch: %+v", img)
	}
	if img.Params != [4]uint32{320, 200, 4, 1} {
		t.Fatalf("params mismatch: %v", img.Params)
	}
}

func TestRescanReplacesRows(t *testing.T) {
	ctx := context.Background()

	containerPath := writeContainer(t, []rres.EntryHeader{
		{ID: 1, DataType: rres.TypeRaw, StoredSize: 4, UncompressedSize: 4},
	})

	cat, err := Open(DefaultOptions(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer cat.Close()

	for i := 0; i < 2; i++ {
		if _, err := cat.ScanContainer(ctx, containerPath); err != nil {
			t.Fatalf("scan %d: %v", i, err)
		}
	}

	resources, err := cat.ListResources(ctx, containerPath)
	if err != nil {
		t.Fatalf("list resources: %v", err)
	}
	if len(resources) != 1 {
		t.Fatalf("rescan duplicated rows: got %d want 1", len(resources))
	}
}

func TestScanBadContainer(t *testing.T) {
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "bad.rres")
	if err := os.WriteFile(path, []byte("not a container"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cat, err := Open(DefaultOptions(filepath.Join(t.TempDir(), "test.db")))
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer cat.Close()

	if _, err := cat.ScanContainer(ctx, path); err == nil {
		t.Fatal("expected error scanning a non-container file")
	}
}
