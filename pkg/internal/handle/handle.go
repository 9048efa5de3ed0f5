// Package handle 提供请求处理器的实现，负责 HTTP 参数解析与错误到响应的转译.
package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/registry"
)

func DefaultHandler(c *gin.Context) {
	c.JSON(http.StatusNotImplemented, gin.H{"message": "Not Implemented"})
}

// 对外的错误文案固定不变，查看器端依赖字面匹配.
const (
	msgOnlyGLB         = "Only .glb files are allowed"
	msgMissingIDs      = "Client ID and Project ID are required"
	msgClientExists    = "Client already exists"
	msgClientNotFound  = "Client not found"
	msgProjectNotFound = "Project not found"
)

// registryErrorStatus 把登记表的未命中错误翻译为响应.
// 两条删除路径的未命中统一返回 404（见 DESIGN.md 对状态码分歧的决定）.
func registryErrorStatus(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, registry.ErrClientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgClientNotFound})
	case errors.Is(err, registry.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgProjectNotFound})
	case errors.Is(err, registry.ErrDuplicateClient):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgClientExists})
	case errors.Is(err, registry.ErrMissingIDs):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingIDs})
	default:
		return false
	}

	return true
}
