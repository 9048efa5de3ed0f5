// Package storage 聚合服务的持久化资源：模型文件仓库、登记表与事件总线.
//
// Example:
//
// 初始化
//
//	 ctx := context.Background()
//	 mgr, err := storage.Init(ctx)
//
//		if err != nil {
//		    // 处理错误
//		}
//
// 获取文件仓库
//
//	store := mgr.GetFileStore()
//	reg := mgr.GetRegistry()
package storage

import (
	"context"
	"sync"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
	mqc "github.com/modelvault/modelvault/pkg/internal/storage/mq"
	nlog "github.com/modelvault/modelvault/pkg/log"
)

// Manager 聚合所有存储资源.
type Manager struct {
	FileStore filestore.Store
	Registry  *registry.Registry
	MQ        *mqc.Client
}

var (
	mgr     *Manager
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置.重复调用只返回已初始化实例.
func Init(ctx context.Context) (*Manager, error) {
	var err error

	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// 文件仓库
		store, e := filestore.New(ctx, &cfg.Storage)
		if e != nil {
			err = e

			return
		}

		m.FileStore = store

		// 登记表持有仓库引用，删除路径在登记表锁内完成文件搬迁
		m.Registry = registry.New(store)

		// 事件总线
		if cfg.Events.Enabled {
			mq, e := mqc.New(ctx)
			if e != nil {
				err = e

				return
			}

			m.MQ = mq
		}

		mgr = m

		nlog.Logger().Info().Msg("storage manager initialized")
	})

	return mgr, err
}

// GetFileStore 获取模型文件仓库.
func (m *Manager) GetFileStore() filestore.Store {
	return m.FileStore
}

// GetRegistry 获取登记表.
func (m *Manager) GetRegistry() *registry.Registry {
	return m.Registry
}

// GetMQClient 获取事件总线客户端.
func (m *Manager) GetMQClient() *mqc.Client {
	return m.MQ
}

// Close 释放全部存储资源.
func (m *Manager) Close() error {
	var err error

	if m.MQ != nil {
		if e := m.MQ.Close(); e != nil {
			err = e
		}
	}

	if m.FileStore != nil {
		if e := m.FileStore.Close(); e != nil {
			err = e
		}
	}

	return err
}
