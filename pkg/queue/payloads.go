package queue

import "time"

// EventHeader 定义所有事件的通用头部元数据.
// 建议在发布消息时填充 TraceID、OccurredAt、Producer 等，便于追踪链路与审计.
type EventHeader struct {
	// Topic 冗余记录消息主题，便于离线处理或转储后定位来源主题.
	Topic string `json:"topic"`
	// TraceID 分布式追踪/关联 ID，可来自中间件或业务生成.
	TraceID string `json:"trace_id,omitempty"`
	// Producer 生产者服务名或节点标识.
	Producer string `json:"producer,omitempty"`
	// OccurredAt 事件发生时间（UTC，RFC3339）.
	OccurredAt time.Time `json:"occurred_at"`
	// Version 事件负载版本，便于向后兼容演进.
	Version string `json:"version,omitempty"`
}

// Message 是统一的消息封装，Header + Payload.
// T 即不同主题对应的负载结构体.
type Message[T any] struct {
	Header  EventHeader `json:"header"`
	Payload T           `json:"payload"`
}

// -------------------------- 模型文件领域 --------------------------

// ModelRef 标识一个已入库的模型文件及其归属.
type ModelRef struct {
	StoredName string `json:"stored_name"`
	ClientID   string `json:"client_id"`
	ProjectID  string `json:"project_id,omitempty"`
	Size       int64  `json:"size,omitempty"`
}

// ModelStoredPayload 文件已写入活动区并完成登记.
type ModelStoredPayload struct {
	Model ModelRef `json:"model"`
	// Optional 业务上下文，如上传时的原始文件名.
	OriginalName string `json:"original_name,omitempty"`
}

// ModelRetiredPayload 文件随删除操作搬入备份区.
type ModelRetiredPayload struct {
	Model      ModelRef `json:"model"`
	BackupPath string   `json:"backup_path,omitempty"`
}

// ModelUnlinkedPayload 登记项已移除但物理文件缺失.
type ModelUnlinkedPayload struct {
	Model ModelRef `json:"model"`
}

// ModelOrphanedPayload 活动区文件无任何登记项指向.
type ModelOrphanedPayload struct {
	StoredName string `json:"stored_name"`
}

// -------------------------- 客户/项目领域 --------------------------

// ClientCreatedPayload 客户记录建立.
type ClientCreatedPayload struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	// AutoCreated 表示由上传流程自动建档而非显式创建.
	AutoCreated bool `json:"auto_created,omitempty"`
}

// ClientRemovedPayload 客户及其全部项目删除完成.
type ClientRemovedPayload struct {
	ClientID        string `json:"client_id"`
	ProjectsRemoved int    `json:"projects_removed"`
	FilesRetired    int    `json:"files_retired"`
}

// ProjectLinkedPayload 项目与存储文件完成关联.
type ProjectLinkedPayload struct {
	Model       ModelRef `json:"model"`
	Description string   `json:"description,omitempty"`
	// Overwrote 表示覆盖了同一项目先前的关联.
	Overwrote bool `json:"overwrote,omitempty"`
}

// ProjectRemovedPayload 单个项目删除完成.
type ProjectRemovedPayload struct {
	ClientID   string `json:"client_id"`
	ProjectID  string `json:"project_id"`
	StoredName string `json:"stored_name,omitempty"`
}

// -------------------------- 巡检领域 --------------------------

// SweepCompletedPayload 一轮孤儿巡检的统计结果.
type SweepCompletedPayload struct {
	ActiveFiles int   `json:"active_files"`
	Orphans     int   `json:"orphans"`
	DurationMS  int64 `json:"duration_ms"`
}
