package configs

import "github.com/spf13/viper"

// EventsConfig 控制生命周期事件发布的开关（全局与分主题）。
type EventsConfig struct {
	Enabled     bool                 `mapstructure:"enabled"`      // 总开关
	BufferSize  int64                `mapstructure:"buffer_size"`  // 进程内通道缓冲
	LogConsumer bool                 `mapstructure:"log_consumer"` // 是否启动日志订阅者
	Model       ModelEventsConfig    `mapstructure:"model"`
	Registry    RegistryEventsConfig `mapstructure:"registry"`
}

// ModelEventsConfig 模型文件领域的事件开关，键名与主题动作一一对应。
type ModelEventsConfig struct {
	Stored   bool `mapstructure:"stored"`   // mv.model.stored
	Retired  bool `mapstructure:"retired"`  // mv.model.retired
	Unlinked bool `mapstructure:"unlinked"` // mv.model.unlinked
	Orphaned bool `mapstructure:"orphaned"` // mv.model.orphaned
}

// RegistryEventsConfig 客户/项目领域的事件开关。
type RegistryEventsConfig struct {
	ClientCreated  bool `mapstructure:"client_created"`  // mv.client.created
	ClientRemoved  bool `mapstructure:"client_removed"`  // mv.client.removed
	ProjectLinked  bool `mapstructure:"project_linked"`  // mv.project.linked
	ProjectRemoved bool `mapstructure:"project_removed"` // mv.project.removed
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	// 总开关：默认启用事件系统
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.buffer_size", 64)
	v.SetDefault("events.log_consumer", true)

	// 模型领域事件
	v.SetDefault("events.model.stored", true)
	v.SetDefault("events.model.retired", true)
	v.SetDefault("events.model.unlinked", true)
	v.SetDefault("events.model.orphaned", true)

	// 客户/项目领域事件
	v.SetDefault("events.registry.client_created", true)
	v.SetDefault("events.registry.client_removed", true)
	v.SetDefault("events.registry.project_linked", true)
	v.SetDefault("events.registry.project_removed", true)
}
