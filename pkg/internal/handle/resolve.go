package handle

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/service"
	"github.com/modelvault/modelvault/pkg/log"
)

// ResolveModel 按客户展示名与项目编号解析出查看器可加载的模型路径.
//
//	@Summary	名称解析
//	@Tags		解析
//	@Produce	json
//	@Param		clientName	path		string	true	"客户展示名（大小写不敏感）"
//	@Param		projectId	path		string	true	"项目编号"
//	@Success	200			{object}	types.ResolveResponse
//	@Failure	404			{object}	map[string]string
//	@Router		/api/v1/resolve/{clientName}/{projectId} [get]
func ResolveModel(c *gin.Context) {
	clientName := c.Param("clientName")
	projectID := c.Param("projectId")

	svc := service.NewResolveService(c.Request.Context())

	resp, err := svc.Resolve(c.Request.Context(), clientName, projectID)
	if err != nil {
		switch {
		case errors.Is(err, registry.ErrClientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Client %q not found", clientName)})
		case errors.Is(err, registry.ErrProjectNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Project %q not found", projectID)})
		case errors.Is(err, service.ErrFileMissing):
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Model for project %q not found", projectID)})
		default:
			log.Logger().Error().Err(err).
				Str("client_name", clientName).
				Str("project", projectID).
				Msg("resolve failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve model"})
		}

		return
	}

	c.JSON(http.StatusOK, resp)
}
