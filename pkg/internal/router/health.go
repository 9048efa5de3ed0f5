package router

import (
	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/handle"
)

// RegisterHealthCheckRoute 注册健康检查路由.
func RegisterHealthCheckRoute(g *gin.RouterGroup) {
	g.GET("/health", handle.Health)

	healthRoutes := g.Group("/health")
	{
		healthRoutes.GET("/store", handle.HealthStore)
		healthRoutes.GET("/registry", handle.HealthRegistry)
		healthRoutes.GET("/mq", handle.HealthMQ)
	}
}
