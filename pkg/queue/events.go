package queue

import "github.com/ThreeDotsLabs/watermill/message"

// -------------------------- 基于业务封装 events --------------------------

// PublishModelStored 发布 mv.model.stored 事件。
// 文件通过校验、写入活动区并完成登记后调用，通知下游流程（审计、统计等）。
// 可通过可选项 opts 注入 TraceID、Producer 等头部信息。
func PublishModelStored(pub message.Publisher, payload ModelStoredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicModelStored, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicModelStored, msg)
}

// ParseModelStored 将 Watermill 消息解析为强类型 Envelope（ModelStoredPayload）。
func ParseModelStored(msg *message.Message) (Message[ModelStoredPayload], error) {
	return ParseWatermillMessage[ModelStoredPayload](msg)
}

// PublishModelRetired 发布 mv.model.retired 事件。
func PublishModelRetired(pub message.Publisher, payload ModelRetiredPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicModelRetired, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicModelRetired, msg)
}

// ParseModelRetired 将 Watermill 消息解析为强类型 Envelope（ModelRetiredPayload）。
func ParseModelRetired(msg *message.Message) (Message[ModelRetiredPayload], error) {
	return ParseWatermillMessage[ModelRetiredPayload](msg)
}

// PublishModelUnlinked 发布 mv.model.unlinked 事件。
// 删除操作发现活动区文件已缺失（或搬迁失败）、仅移除了登记项时调用。
func PublishModelUnlinked(pub message.Publisher, payload ModelUnlinkedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicModelUnlinked, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicModelUnlinked, msg)
}

// PublishModelOrphaned 发布 mv.model.orphaned 事件，每个孤儿文件一条。
func PublishModelOrphaned(pub message.Publisher, payload ModelOrphanedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicModelOrphaned, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicModelOrphaned, msg)
}

// PublishClientCreated 发布 mv.client.created 事件。
// 显式建档与上传自动建档均会触发，后者以 AutoCreated 区分。
func PublishClientCreated(pub message.Publisher, payload ClientCreatedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicClientCreated, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicClientCreated, msg)
}

// PublishClientRemoved 发布 mv.client.removed 事件。
func PublishClientRemoved(pub message.Publisher, payload ClientRemovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicClientRemoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicClientRemoved, msg)
}

// PublishProjectLinked 发布 mv.project.linked 事件。
func PublishProjectLinked(pub message.Publisher, payload ProjectLinkedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicProjectLinked, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicProjectLinked, msg)
}

// PublishProjectRemoved 发布 mv.project.removed 事件。
func PublishProjectRemoved(pub message.Publisher, payload ProjectRemovedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicProjectRemoved, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicProjectRemoved, msg)
}

// PublishSweepCompleted 发布 mv.sweep.completed 事件。
func PublishSweepCompleted(pub message.Publisher, payload SweepCompletedPayload, opts ...func(*EventHeader)) error {
	msg, err := NewWatermillMessage(TopicSweepCompleted, payload, opts...)
	if err != nil {
		return err
	}

	return pub.Publish(TopicSweepCompleted, msg)
}
