package service

import (
	"context"
	"fmt"
	"io"
	"path"

	"github.com/modelvault/modelvault/pkg/configs"
	ctxPkg "github.com/modelvault/modelvault/pkg/context"
	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/types"
	nlog "github.com/modelvault/modelvault/pkg/log"
	"github.com/modelvault/modelvault/pkg/metrics"
)

// ModelService 处理模型文件的上传入库.
type ModelService struct{ *VaultService }

func NewModelService(c context.Context) *ModelService { return &ModelService{NewVaultService(c)} }

// Upload 执行完整入库流程：准入校验、派生存储名、写入活动区、登记关联.
// 校验失败在任何文件写入前返回；登记失败不回滚已写入的文件（由巡检任务发现）.
func (s *ModelService) Upload(ctx context.Context, originalName, contentType string,
	r io.Reader, size int64, form *types.UploadModelForm,
) (*types.UploadModelResponse, error) {
	if form.ClientID == "" || form.ProjectID == "" {
		return nil, registry.ErrMissingIDs
	}

	cfg := configs.GetConfig().Storage

	if err := ValidateModelUpload(originalName, contentType, size, cfg.MaxUploadBytes()); err != nil {
		metrics.UploadsTotal.WithLabelValues("rejected").Inc()

		return nil, err
	}

	clientID := registry.Slugify(form.ClientID)
	if clientID == "" {
		return nil, registry.ErrMissingIDs
	}

	storedName := StoredName(originalName)

	if err := s.store.Place(ctx, storedName, r, size); err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()

		return nil, fmt.Errorf("store model file: %w", err)
	}

	clientCreated, err := s.registry.LinkProject(clientID, form.ProjectID, storedName, form.Description)
	if err != nil {
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("accepted").Inc()

	logger := ctxPkg.WithTraceContext(ctx, *nlog.Logger())
	logger.Info().
		Str("client", clientID).
		Str("project", form.ProjectID).
		Str("stored_name", storedName).
		Int64("size", size).
		Msg("model stored")

	if clientCreated {
		s.publishClientCreated(clientID, registry.Humanize(clientID), true)
	}

	s.publishModelStored(originalName, storedName, clientID, form.ProjectID, size)
	s.publishProjectLinked(storedName, clientID, form.ProjectID, form.Description, size)

	return &types.UploadModelResponse{
		Filename:  storedName,
		URL:       path.Join(cfg.ServePathPrefix, storedName),
		ClientID:  clientID,
		ProjectID: form.ProjectID,
	}, nil
}
