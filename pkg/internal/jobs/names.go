package jobs

// 任务名称常量，便于统一管理与引用.
const (
	JobOrphanSweep = "models.orphan_sweep"
)

// Cron 表达式常量（可选，但推荐一并集中管理）.
const (
	CronOrphanSweep = "*/15 * * * *"
)
