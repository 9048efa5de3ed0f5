// Package handle 新增健康检查处理器实现.
package handle

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/modelvault/modelvault/pkg/context"
)

const timeout = 2 * time.Second

// HealthStore 文件仓库健康检查.
func HealthStore(c *gin.Context) {
	store := ctxPkg.GetFileStore(c.Request.Context())
	if store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "store", "status": "unhealthy", "error": "file store not initialized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "store", "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "store", "status": "ok"})
}

// HealthRegistry 登记表健康检查：能取到快照即视为健康.
func HealthRegistry(c *gin.Context) {
	reg := ctxPkg.GetRegistry(c.Request.Context())
	if reg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": "registry", "status": "unhealthy", "error": "registry not initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "registry", "status": "ok", "clients": len(reg.ListClients())})
}

// HealthMQ 事件总线健康检查.
func HealthMQ(c *gin.Context) {
	mqc := ctxPkg.GetMQClient(c.Request.Context())
	if mqc == nil { // 事件未启用时不算不健康，但明确报告
		c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "disabled"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": "mq", "status": "ok"})
}

// Health 聚合健康检查，任一必要组件不可用即 503.
func Health(c *gin.Context) {
	store := ctxPkg.GetFileStore(c.Request.Context())
	reg := ctxPkg.GetRegistry(c.Request.Context())

	if store == nil || reg == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
	defer cancel()

	if err := store.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
