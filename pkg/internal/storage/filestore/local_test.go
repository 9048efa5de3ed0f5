package filestore_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
)

func newTestStore(t *testing.T) (filestore.Store, string, string) {
	t.Helper()

	root := t.TempDir()
	active := filepath.Join(root, "models")
	backup := filepath.Join(root, "models_backup")

	store, err := filestore.New(context.Background(), &configs.StorageConfig{
		Backend:   string(configs.StorageBackendLocal),
		ActiveDir: active,
		BackupDir: backup,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return store, active, backup
}

func TestPlaceAndExists(t *testing.T) {
	store, active, _ := newTestStore(t)

	content := "glTF binary payload"
	if err := store.Place(context.Background(), "1_chair.glb", strings.NewReader(content), int64(len(content))); err != nil {
		t.Fatalf("Place: %v", err)
	}

	if !store.ExistsActive("1_chair.glb") {
		t.Fatal("expected file in active area")
	}

	data, err := os.ReadFile(filepath.Join(active, "1_chair.glb"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if string(data) != content {
		t.Fatalf("content mismatch: %q", data)
	}
}

// 存储名不允许夹带路径成分，写入必须落在活动区内
func TestPlaceStripsPath(t *testing.T) {
	store, active, _ := newTestStore(t)

	if err := store.Place(context.Background(), "../evil.glb", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("Place: %v", err)
	}

	if _, err := os.Stat(filepath.Join(active, "evil.glb")); err != nil {
		t.Fatalf("expected evil.glb inside active area: %v", err)
	}

	if _, err := os.Stat(filepath.Join(active, "..", "evil.glb")); err == nil {
		t.Fatal("file escaped active area")
	}
}

func TestRelocateToBackup(t *testing.T) {
	store, active, backup := newTestStore(t)

	if err := store.Place(context.Background(), "2_lamp.glb", strings.NewReader("x"), 1); err != nil {
		t.Fatalf("Place: %v", err)
	}

	moved, err := store.RelocateToBackup("2_lamp.glb")
	if err != nil {
		t.Fatalf("RelocateToBackup: %v", err)
	}

	if !moved {
		t.Fatal("expected moved=true")
	}

	if _, err := os.Stat(filepath.Join(active, "2_lamp.glb")); err == nil {
		t.Fatal("file still in active area")
	}

	if _, err := os.Stat(filepath.Join(backup, "2_lamp.glb")); err != nil {
		t.Fatalf("file not in backup area: %v", err)
	}
}

// 文件已缺失时搬迁不是错误
func TestRelocateMissingFile(t *testing.T) {
	store, _, _ := newTestStore(t)

	moved, err := store.RelocateToBackup("nope.glb")
	if err != nil {
		t.Fatalf("RelocateToBackup: %v", err)
	}

	if moved {
		t.Fatal("expected moved=false for missing file")
	}
}

func TestListActive(t *testing.T) {
	store, _, _ := newTestStore(t)

	for _, name := range []string{"1_a.glb", "2_b.glb"} {
		if err := store.Place(context.Background(), name, strings.NewReader("x"), 1); err != nil {
			t.Fatalf("Place %s: %v", name, err)
		}
	}

	names, err := store.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}

	if len(names) != 2 {
		t.Fatalf("expected 2 files, got %v", names)
	}
}

func TestHealthCheck(t *testing.T) {
	store, active, _ := newTestStore(t)

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}

	if err := os.RemoveAll(active); err != nil {
		t.Fatalf("remove active dir: %v", err)
	}

	if err := store.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected health check failure after active dir removed")
	}
}
