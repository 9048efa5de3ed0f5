package service

import (
	"context"
	"fmt"
	"path"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/types"
	nlog "github.com/modelvault/modelvault/pkg/log"
)

// ResolveService 面向查看器的名称解析：展示名 + 项目编号 → 可服务路径.
type ResolveService struct{ *VaultService }

func NewResolveService(c context.Context) *ResolveService {
	return &ResolveService{NewVaultService(c)}
}

// Resolve 按展示名（大小写不敏感）定位客户，再按编号取项目.
// 解析不走缓存，每次都回到登记表，并在返回前复核文件仍在活动区，
// 避免把已退役或丢失的文件路径交给查看器.
func (s *ResolveService) Resolve(ctx context.Context, clientName, projectID string) (*types.ResolveResponse, error) {
	client, err := s.registry.FindClientByName(clientName)
	if err != nil {
		return nil, err
	}

	project, err := s.registry.GetProject(client.ID, projectID)
	if err != nil {
		return nil, err
	}

	if !s.store.ExistsActive(project.Filename) {
		nlog.Logger().Warn().
			Str("client", client.ID).
			Str("project", projectID).
			Str("filename", project.Filename).
			Msg("registry entry points at missing file")

		return nil, fmt.Errorf("%w: %s", ErrFileMissing, project.Filename)
	}

	return &types.ResolveResponse{
		ModelPath:   path.Join(configs.GetConfig().Storage.ServePathPrefix, project.Filename),
		ClientName:  client.Name,
		ProjectName: projectID,
		Description: project.Description,
	}, nil
}
