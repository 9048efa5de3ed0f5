package handle

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/service"
	"github.com/modelvault/modelvault/pkg/internal/types"
	"github.com/modelvault/modelvault/pkg/log"
)

// uploadFormSlack 为 multipart 边界与文本字段预留的请求体额外空间.
const uploadFormSlack int64 = 1 << 20

// bodyTooLarge 识别 http.MaxBytesReader 截断请求体产生的错误.
func bodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError

	return errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large")
}

// UploadModel 接收 multipart 表单的模型文件并入库.
//
//	@Summary	上传模型文件
//	@Tags		模型
//	@Accept		multipart/form-data
//	@Produce	json
//	@Param		file		formData	file	true	"glTF 二进制文件 (.glb)"
//	@Param		client_id	formData	string	true	"客户标识"
//	@Param		project_id	formData	string	true	"项目编号"
//	@Param		description	formData	string	false	"项目描述"
//	@Success	200	{object}	types.UploadModelResponse
//	@Failure	400	{object}	map[string]string
//	@Failure	413	{object}	map[string]string
//	@Failure	500	{object}	map[string]string
//	@Router		/api/v1/models [post]
func UploadModel(c *gin.Context) {
	l := log.Logger()

	// 超限请求体在缓冲前截断：先看声明长度，再用 MaxBytesReader 兜住
	// 未声明长度的流式请求，避免超大上传吃满内存或临时盘.
	if maxBytes := configs.GetConfig().Storage.MaxUploadBytes(); maxBytes > 0 {
		if c.Request.ContentLength > maxBytes+uploadFormSlack {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": service.ErrFileTooLarge.Error()})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes+uploadFormSlack)
	}

	var form types.UploadModelForm
	if err := c.ShouldBind(&form); err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": service.ErrFileTooLarge.Error()})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if form.ClientID == "" || form.ProjectID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgMissingIDs})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		if bodyTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": service.ErrFileTooLarge.Error()})
			return
		}

		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})

		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		l.Error().Err(err).Msg("open multipart file failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})

		return
	}
	defer f.Close()

	svc := service.NewModelService(c.Request.Context())

	resp, err := svc.Upload(c.Request.Context(), fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), f, fileHeader.Size, &form)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidFileType):
			c.JSON(http.StatusBadRequest, gin.H{"error": msgOnlyGLB})
		case errors.Is(err, service.ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
		default:
			if registryErrorStatus(c, err) {
				return
			}

			l.Error().Err(err).Str("filename", fileHeader.Filename).Msg("upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store model"})
		}

		return
	}

	c.JSON(http.StatusOK, resp)
}
