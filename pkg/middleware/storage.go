package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/storage"
)

// StorageMiddleware 把存储管理器注入请求上下文，供 service 层取用.
func StorageMiddleware(manager *storage.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := storage.WithManager(c.Request.Context(), manager)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
