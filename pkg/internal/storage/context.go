package storage

import (
	"context"

	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
	mqc "github.com/modelvault/modelvault/pkg/internal/storage/mq"
)

type contextKey string

const managerKey contextKey = "storageManager"

// WithManager 将 Manager 存储到 context 中.
func WithManager(ctx context.Context, mgr *Manager) context.Context {
	return context.WithValue(ctx, managerKey, mgr)
}

// GetManagerFromContext 从 context 中获取 Manager.
func GetManagerFromContext(ctx context.Context) *Manager {
	if mgr, ok := ctx.Value(managerKey).(*Manager); ok {
		return mgr
	}

	return nil
}

// GetFileStoreFromContext 从 context 中获取文件仓库.
func GetFileStoreFromContext(ctx context.Context) filestore.Store {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.FileStore
	}

	return nil
}

// GetRegistryFromContext 从 context 中获取登记表.
func GetRegistryFromContext(ctx context.Context) *registry.Registry {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.Registry
	}

	return nil
}

// GetMQClientFromContext 从 context 中获取事件总线客户端.
func GetMQClientFromContext(ctx context.Context) *mqc.Client {
	if mgr := GetManagerFromContext(ctx); mgr != nil {
		return mgr.MQ
	}

	return nil
}
