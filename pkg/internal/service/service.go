// Package service 实现登记服务的业务流程：上传入库、客户/项目管理与名称解析.
package service

import (
	"context"

	ctxPkg "github.com/modelvault/modelvault/pkg/context"
	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
	"github.com/modelvault/modelvault/pkg/internal/storage/mq"
)

// VaultService 聚合业务流程共享的存储资源.
type VaultService struct {
	store    filestore.Store
	registry *registry.Registry
	mqClient *mq.Client
}

func NewVaultService(c context.Context) *VaultService {
	return &VaultService{
		store:    ctxPkg.GetFileStore(c),
		registry: ctxPkg.GetRegistry(c),
		mqClient: ctxPkg.GetMQClient(c),
	}
}
