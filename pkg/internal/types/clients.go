package types

import "github.com/modelvault/modelvault/pkg/internal/model"

// CreateClientRequest 显式建档请求.
type CreateClientRequest struct {
	Name    string `binding:"required" json:"name"`
	Contact string `json:"contact"`
}

// CreateClientResponse 建档结果.
type CreateClientResponse struct {
	Message  string `json:"message"`
	ClientID string `json:"clientId"`
}

// ClientSummary 客户列表中的单个条目.
type ClientSummary struct {
	ID           string                   `json:"id"`
	Name         string                   `json:"name"`
	Contact      string                   `json:"contact"`
	Projects     map[string]model.Project `json:"projects"`
	ProjectCount int                      `json:"projectCount"`
}

// ListClientsResponse 客户列表响应.
type ListClientsResponse struct {
	Clients []ClientSummary `json:"clients"`
}

// DeleteProjectResponse 项目删除结果.
type DeleteProjectResponse struct {
	Message           string `json:"message"`
	RemainingProjects int    `json:"remainingProjects"`
}

// DeleteClientResponse 客户删除结果.
type DeleteClientResponse struct {
	Message string `json:"message"`
}
