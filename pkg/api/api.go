// Package api 定义HTTP服务的对外接口，将各路由组绑定到 gin 引擎.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/router"
	"github.com/modelvault/modelvault/pkg/middleware"
)

// RegisterGroup 注册登记服务的全部路由组到传入的 gin 引擎.
// 上传路由单独套限流与熔断：大文件写入是最容易拖垮服务的入口.
func RegisterGroup(e *gin.Engine) *gin.Engine {
	cfg := configs.GetConfig()

	v1 := e.Group("/api/v1")
	{
		modelRoutes := v1.Group("")
		modelRoutes.Use(
			middleware.RateLimitMiddleware(cfg.RateLimit),
			middleware.CircuitBreakerMiddleware(cfg.CircuitBreaker),
		)
		router.RegisterModelRoutes(modelRoutes)

		router.RegisterClientRoutes(v1)
		router.RegisterResolveRoutes(v1)
		router.RegisterHealthCheckRoute(v1)
		router.RegisterSchedulerRoutes(v1)
	}

	return e
}
