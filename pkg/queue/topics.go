// Package queue 定义消息主题常量与分组，供发布/订阅使用.
package queue

// 主题命名规范：mv.<域>.<动作>，尽量稳定且向后兼容.
// 域：model(模型文件)、client(客户)、project(项目)、sweep(巡检)
// 动作：stored/retired/removed/unlinked/completed 等过去式表示已发生事实

const (
	// 模型文件领域.
	TopicModelStored   = "mv.model.stored"   // 文件通过校验并写入活动区，登记表已关联
	TopicModelRetired  = "mv.model.retired"  // 文件随删除操作搬入备份区
	TopicModelUnlinked = "mv.model.unlinked" // 登记项已移除但物理文件缺失（只动账本）
	TopicModelOrphaned = "mv.model.orphaned" // 巡检发现活动区文件无任何登记项

	// 客户/项目领域.
	TopicClientCreated  = "mv.client.created"  // 客户记录建立（显式创建或上传自动建档）
	TopicClientRemoved  = "mv.client.removed"  // 客户及其全部项目删除完成
	TopicProjectLinked  = "mv.project.linked"  // 项目与存储文件完成关联
	TopicProjectRemoved = "mv.project.removed" // 单个项目删除完成

	// 巡检领域.
	TopicSweepCompleted = "mv.sweep.completed" // 一轮孤儿巡检结束
)

// 主题分组，用于批量订阅.
var (
	// 模型文件相关主题集合.
	ModelTopics = []string{
		TopicModelStored, TopicModelRetired, TopicModelUnlinked, TopicModelOrphaned,
	}

	// 客户/项目相关主题集合.
	RegistryTopics = []string{
		TopicClientCreated, TopicClientRemoved, TopicProjectLinked, TopicProjectRemoved,
	}

	// 全部主题.
	AllTopics = []string{
		TopicModelStored, TopicModelRetired, TopicModelUnlinked, TopicModelOrphaned,
		TopicClientCreated, TopicClientRemoved, TopicProjectLinked, TopicProjectRemoved,
		TopicSweepCompleted,
	}
)
