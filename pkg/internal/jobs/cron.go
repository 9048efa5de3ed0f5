// Package jobs 负责注册与实现业务定时任务（基于 scheduler）。
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/modelvault/modelvault/pkg/configs"
	ctxPkg "github.com/modelvault/modelvault/pkg/context"
	"github.com/modelvault/modelvault/pkg/internal/storage"
	"github.com/modelvault/modelvault/pkg/log"
	"github.com/modelvault/modelvault/pkg/metrics"
	"github.com/modelvault/modelvault/pkg/queue"
	"github.com/modelvault/modelvault/pkg/scheduler"
)

// RegisterCronJobs 配置业务定时任务：
//   - 每 15 分钟巡检活动区，找出不被任何登记项引用的孤儿文件.
//
// 登记表不持久化，进程重启后活动区会留下孤儿；搬迁失败的删除也会产生孤儿.
// 巡检只记录与计量，不做自动清理.
func RegisterCronJobs(sched *scheduler.Scheduler, mgr *storage.Manager) error {
	if sched == nil {
		return fmt.Errorf("scheduler is nil")
	}

	if mgr == nil {
		return fmt.Errorf("storage manager is nil")
	}

	// 将 storage manager 注入到 context，便于任务内使用
	baseCtx := ctxPkg.WithStorageManager(context.Background(), mgr)

	_ = sched.AddCron(JobOrphanSweep, CronOrphanSweep, func(ctx context.Context) {
		runOrphanSweep(ctx, mgr)
	}, baseCtx)

	return nil
}

// runOrphanSweep 对比活动区文件清单与登记表引用集合.
func runOrphanSweep(ctx context.Context, mgr *storage.Manager) {
	l := log.Logger().With().Str("job", JobOrphanSweep).Logger()
	start := time.Now()

	active, err := mgr.GetFileStore().ListActive(ctx)
	if err != nil {
		l.Error().Err(err).Msg("list active area failed")
		return
	}

	linked := mgr.GetRegistry().ActiveFilenames()

	var orphans []string

	for _, name := range active {
		if _, ok := linked[name]; !ok {
			orphans = append(orphans, name)
		}
	}

	metrics.OrphanFiles.Set(float64(len(orphans)))

	for _, name := range orphans {
		l.Warn().Str("filename", name).Msg("orphan file in active area")
		publishModelOrphaned(mgr, name)
	}

	l.Info().
		Int("active_files", len(active)).
		Int("orphans", len(orphans)).
		Dur("took", time.Since(start)).
		Msg("orphan sweep completed")

	publishSweepCompleted(mgr, len(active), len(orphans), time.Since(start))
}

func publishModelOrphaned(mgr *storage.Manager, storedName string) {
	cfg := configs.GetConfig().Events
	if mgr.GetMQClient() == nil || !cfg.Enabled || !cfg.Model.Orphaned {
		return
	}

	err := queue.PublishModelOrphaned(jobPublisher{mgr}, queue.ModelOrphanedPayload{
		StoredName: storedName,
	}, queue.WithProducer("modelvault"))
	if err != nil {
		log.Logger().Warn().Err(err).Str("topic", queue.TopicModelOrphaned).Msg("publish event failed")
	}
}

func publishSweepCompleted(mgr *storage.Manager, activeFiles, orphans int, took time.Duration) {
	if mgr.GetMQClient() == nil || !configs.GetConfig().Events.Enabled {
		return
	}

	err := queue.PublishSweepCompleted(jobPublisher{mgr}, queue.SweepCompletedPayload{
		ActiveFiles: activeFiles,
		Orphans:     orphans,
		DurationMS:  took.Milliseconds(),
	}, queue.WithProducer("modelvault"))
	if err != nil {
		log.Logger().Warn().Err(err).Str("topic", queue.TopicSweepCompleted).Msg("publish event failed")
	}
}

// jobPublisher 把存储管理器的 MQ 客户端适配为 watermill 的 message.Publisher.
type jobPublisher struct{ mgr *storage.Manager }

func (p jobPublisher) Publish(topic string, msgs ...*message.Message) error {
	return p.mgr.GetMQClient().Publish(context.Background(), topic, msgs...)
}

func (p jobPublisher) Close() error { return nil }
