// Package router 管理路由配置，用于设置HTTP服务的路由规则.
// router 包只负责将路径和处理器绑定到 gin 引擎，处理器的实现由 pkg/internal/handle 提供.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/handle"
)

// RegisterModelRoutes 注册模型上传路由.
func RegisterModelRoutes(g *gin.RouterGroup) {
	g.POST("/models", handle.UploadModel)
}

// RegisterClientRoutes 注册客户与项目管理路由.
func RegisterClientRoutes(g *gin.RouterGroup) {
	clientRoutes := g.Group("/clients")
	{
		clientRoutes.GET("", handle.ListClients)
		clientRoutes.POST("", handle.CreateClient)
		clientRoutes.DELETE("/:clientId", handle.DeleteClient)
		clientRoutes.DELETE("/:clientId/projects/:projectId", handle.DeleteProject)
	}
}

// RegisterResolveRoutes 注册查看器名称解析路由.
func RegisterResolveRoutes(g *gin.RouterGroup) {
	g.GET("/resolve/:clientName/:projectId", handle.ResolveModel)
}
