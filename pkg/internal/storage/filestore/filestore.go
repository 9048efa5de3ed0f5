// Package filestore 管理模型文件的物理放置.
//
// 文件在任一时刻只存在于两个命名空间之一：活动区（在役、可被解析）或
// 备份区（软删除后退役）. 本包只做文件放置，客户/项目关联由 registry 负责.
package filestore

import (
	"context"
	"fmt"
	"io"

	"github.com/modelvault/modelvault/pkg/configs"
)

// Store 文件仓库.
type Store interface {
	// Place 把内容写入活动区的 name 下.
	Place(ctx context.Context, name string, r io.Reader, size int64) error
	// RelocateToBackup 把活动区文件搬到备份区；文件已缺失时返回 (false, nil)，不视为错误.
	RelocateToBackup(name string) (bool, error)
	// ExistsActive 查询文件是否仍在活动区.
	ExistsActive(name string) bool
	// ActivePath / BackupPath 纯路径查询，不触盘.
	ActivePath(name string) string
	BackupPath(name string) string
	// ListActive 列出活动区全部存储名，供孤儿巡检使用.
	ListActive(ctx context.Context) ([]string, error)
	HealthCheck(ctx context.Context) error
	Close() error
}

// New 按配置选择文件仓库后端.
func New(ctx context.Context, cfg *configs.StorageConfig) (Store, error) {
	switch configs.StorageBackend(cfg.Backend) {
	case configs.StorageBackendS3:
		return newS3Store(ctx, cfg)
	case configs.StorageBackendLocal, "":
		return newLocalStore(cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
