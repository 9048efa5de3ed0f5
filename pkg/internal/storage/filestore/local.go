package filestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/modelvault/modelvault/pkg/configs"
	nlog "github.com/modelvault/modelvault/pkg/log"
)

// localStore 本地文件系统后端：活动区与备份区是两个平铺目录，启动时惰性创建.
type localStore struct {
	activeDir string
	backupDir string
}

func newLocalStore(cfg *configs.StorageConfig) (Store, error) {
	for _, dir := range []string{cfg.ActiveDir, cfg.BackupDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
		}
	}

	nlog.Logger().Info().
		Str("active_dir", cfg.ActiveDir).
		Str("backup_dir", cfg.BackupDir).
		Msg("local file store ready")

	return &localStore{activeDir: cfg.ActiveDir, backupDir: cfg.BackupDir}, nil
}

func (s *localStore) Place(ctx context.Context, name string, r io.Reader, size int64) error {
	// 存储名不允许携带路径成分
	name = filepath.Base(name)

	dst, err := os.Create(filepath.Join(s.activeDir, name))
	if err != nil {
		return fmt.Errorf("create model file %s: %w", name, err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()

		return fmt.Errorf("write model file %s: %w", name, err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("close model file %s: %w", name, err)
	}

	return nil
}

func (s *localStore) RelocateToBackup(name string) (bool, error) {
	name = filepath.Base(name)

	src := filepath.Join(s.activeDir, name)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return false, nil
	}

	if err := os.Rename(src, filepath.Join(s.backupDir, name)); err != nil {
		return false, fmt.Errorf("relocate %s to backup: %w", name, err)
	}

	return true, nil
}

func (s *localStore) ExistsActive(name string) bool {
	_, err := os.Stat(filepath.Join(s.activeDir, filepath.Base(name)))
	return err == nil
}

func (s *localStore) ActivePath(name string) string {
	return filepath.Join(s.activeDir, filepath.Base(name))
}

func (s *localStore) BackupPath(name string) string {
	return filepath.Join(s.backupDir, filepath.Base(name))
}

func (s *localStore) ListActive(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.activeDir)
	if err != nil {
		return nil, fmt.Errorf("list active area: %w", err)
	}

	names := make([]string, 0, len(entries))

	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

func (s *localStore) HealthCheck(ctx context.Context) error {
	if _, err := os.Stat(s.activeDir); err != nil {
		return fmt.Errorf("active area unavailable: %w", err)
	}

	return nil
}

func (s *localStore) Close() error { return nil }
