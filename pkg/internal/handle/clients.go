package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/service"
	"github.com/modelvault/modelvault/pkg/internal/types"
	"github.com/modelvault/modelvault/pkg/log"
)

// ListClients 返回全部客户及其项目.
//
//	@Summary	客户列表
//	@Tags		客户
//	@Produce	json
//	@Success	200	{object}	types.ListClientsResponse
//	@Router		/api/v1/clients [get]
func ListClients(c *gin.Context) {
	svc := service.NewClientService(c.Request.Context())
	c.JSON(http.StatusOK, svc.List(c.Request.Context()))
}

// CreateClient 显式建档.
//
//	@Summary	创建客户
//	@Tags		客户
//	@Accept		json
//	@Produce	json
//	@Param		body	body		types.CreateClientRequest	true	"客户名称与联系方式"
//	@Success	200		{object}	types.CreateClientResponse
//	@Failure	400		{object}	map[string]string
//	@Router		/api/v1/clients [post]
func CreateClient(c *gin.Context) {
	var req types.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewClientService(c.Request.Context())

	resp, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		if registryErrorStatus(c, err) {
			return
		}

		log.Logger().Error().Err(err).Str("name", req.Name).Msg("create client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create client"})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteClient 级联删除客户及其全部项目.
//
//	@Summary	删除客户
//	@Tags		客户
//	@Produce	json
//	@Param		clientId	path		string	true	"客户标识"
//	@Success	200			{object}	types.DeleteClientResponse
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/clients/{clientId} [delete]
func DeleteClient(c *gin.Context) {
	svc := service.NewClientService(c.Request.Context())

	resp, err := svc.DeleteClient(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		if registryErrorStatus(c, err) {
			return
		}

		log.Logger().Error().Err(err).Str("client", c.Param("clientId")).Msg("delete client failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete client"})

		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteProject 软删除单个项目.
//
//	@Summary	删除项目
//	@Tags		客户
//	@Produce	json
//	@Param		clientId	path		string	true	"客户标识"
//	@Param		projectId	path		string	true	"项目编号"
//	@Success	200			{object}	types.DeleteProjectResponse
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/clients/{clientId}/projects/{projectId} [delete]
func DeleteProject(c *gin.Context) {
	svc := service.NewClientService(c.Request.Context())

	resp, err := svc.DeleteProject(c.Request.Context(), c.Param("clientId"), c.Param("projectId"))
	if err != nil {
		if registryErrorStatus(c, err) {
			return
		}

		log.Logger().Error().Err(err).
			Str("client", c.Param("clientId")).
			Str("project", c.Param("projectId")).
			Msg("delete project failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete project"})

		return
	}

	c.JSON(http.StatusOK, resp)
}
