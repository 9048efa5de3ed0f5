// Package context 拓展上下文功能，将日志、存储等集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/storage"
	"github.com/modelvault/modelvault/pkg/internal/storage/filestore"
	mqc "github.com/modelvault/modelvault/pkg/internal/storage/mq"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return storage.WithManager(ctx, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	return storage.GetManagerFromContext(ctx)
}

// GetFileStore 从 context 中获取模型文件仓库.
func GetFileStore(ctx context.Context) filestore.Store {
	return storage.GetFileStoreFromContext(ctx)
}

// GetRegistry 从 context 中获取登记表.
func GetRegistry(ctx context.Context) *registry.Registry {
	return storage.GetRegistryFromContext(ctx)
}

// GetMQClient 从 context 中获取事件总线客户端.
func GetMQClient(ctx context.Context) *mqc.Client {
	return storage.GetMQClientFromContext(ctx)
}

// WithTraceContext 创建带有追踪上下文的logger.
func WithTraceContext(ctx context.Context, logger zerolog.Logger) zerolog.Logger {
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		return logger.With().
			Str("trace_id", span.SpanContext().TraceID().String()).
			Str("span_id", span.SpanContext().SpanID().String()).
			Logger()
	}

	return logger
}
