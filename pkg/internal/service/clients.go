package service

import (
	"context"

	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/types"
)

// ClientService 处理客户与项目的管理操作.
type ClientService struct{ *VaultService }

func NewClientService(c context.Context) *ClientService { return &ClientService{NewVaultService(c)} }

// List 返回全部客户及其项目的快照.
func (s *ClientService) List(ctx context.Context) *types.ListClientsResponse {
	clients := s.registry.ListClients()

	out := make([]types.ClientSummary, 0, len(clients))
	for _, c := range clients {
		out = append(out, types.ClientSummary{
			ID:           c.ID,
			Name:         c.Name,
			Contact:      c.Contact,
			Projects:     c.Projects,
			ProjectCount: len(c.Projects),
		})
	}

	return &types.ListClientsResponse{Clients: out}
}

// Create 显式建档. 标识由名称派生，同标识客户已存在时返回 ErrDuplicateClient.
func (s *ClientService) Create(ctx context.Context, req *types.CreateClientRequest) (*types.CreateClientResponse, error) {
	id, err := s.registry.CreateClient(req.Name, req.Contact)
	if err != nil {
		return nil, err
	}

	s.publishClientCreated(id, req.Name, false)

	return &types.CreateClientResponse{
		Message:  "Client created",
		ClientID: id,
	}, nil
}

// DeleteProject 软删除单个项目：文件搬入备份区，登记项移除.
// 入库时客户标识经过规范化，这里同样规范化，保证调用方可用上传时的字面标识.
func (s *ClientService) DeleteProject(ctx context.Context, clientID, projectID string) (*types.DeleteProjectResponse, error) {
	clientID = registry.Slugify(clientID)

	removed, remaining, err := s.registry.DeleteProject(clientID, projectID)
	if err != nil {
		return nil, err
	}

	s.publishProjectRemoved(clientID, projectID, removed.Project.Filename)
	s.publishModelRetirement(clientID, removed)

	return &types.DeleteProjectResponse{
		Message:           "Project deleted",
		RemainingProjects: remaining,
	}, nil
}

// DeleteClient 级联删除客户及其全部项目.
func (s *ClientService) DeleteClient(ctx context.Context, clientID string) (*types.DeleteClientResponse, error) {
	clientID = registry.Slugify(clientID)

	removed, err := s.registry.DeleteClient(clientID)
	if err != nil {
		return nil, err
	}

	retired := 0

	for _, rp := range removed {
		s.publishProjectRemoved(clientID, rp.ProjectID, rp.Project.Filename)
		s.publishModelRetirement(clientID, rp)

		if rp.Relocated {
			retired++
		}
	}

	s.publishClientRemoved(clientID, len(removed), retired)

	return &types.DeleteClientResponse{Message: "Client deleted"}, nil
}
