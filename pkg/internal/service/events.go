package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/modelvault/modelvault/pkg/configs"
	"github.com/modelvault/modelvault/pkg/internal/registry"
	"github.com/modelvault/modelvault/pkg/internal/storage/mq"
	nlog "github.com/modelvault/modelvault/pkg/log"
	"github.com/modelvault/modelvault/pkg/queue"
)

// 事件是旁路通知：发布失败只记日志，绝不影响主流程结果.
// 每个发布函数由与其主题同名的配置开关门控（events.model.*、events.registry.*）.

const eventProducer = "modelvault"

// eventPublisher 把 mq.Client 适配为 watermill 的 message.Publisher.
type eventPublisher struct{ c *mq.Client }

func (p eventPublisher) Publish(topic string, msgs ...*message.Message) error {
	return p.c.Publish(context.Background(), topic, msgs...)
}

func (p eventPublisher) Close() error { return nil }

// eventsOn 检查总开关与单主题开关.
func (s *VaultService) eventsOn(topicEnabled bool) bool {
	return s.mqClient != nil && configs.GetConfig().Events.Enabled && topicEnabled
}

func (s *VaultService) logPublishErr(err error, topic string) {
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("topic", topic).Msg("publish event failed")
	}
}

func (s *VaultService) publishModelStored(originalName, storedName, clientID, projectID string, size int64) {
	if !s.eventsOn(configs.GetConfig().Events.Model.Stored) {
		return
	}

	err := queue.PublishModelStored(eventPublisher{s.mqClient}, queue.ModelStoredPayload{
		Model: queue.ModelRef{
			StoredName: storedName,
			ClientID:   clientID,
			ProjectID:  projectID,
			Size:       size,
		},
		OriginalName: originalName,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicModelStored)
}

// publishModelRetirement 按文件搬迁结果发布 mv.model.retired 或 mv.model.unlinked.
func (s *VaultService) publishModelRetirement(clientID string, rp registry.RemovedProject) {
	cfg := configs.GetConfig().Events

	ref := queue.ModelRef{
		StoredName: rp.Project.Filename,
		ClientID:   clientID,
		ProjectID:  rp.ProjectID,
	}

	if rp.Relocated {
		if !s.eventsOn(cfg.Model.Retired) {
			return
		}

		err := queue.PublishModelRetired(eventPublisher{s.mqClient}, queue.ModelRetiredPayload{
			Model:      ref,
			BackupPath: s.store.BackupPath(rp.Project.Filename),
		}, queue.WithProducer(eventProducer))
		s.logPublishErr(err, queue.TopicModelRetired)

		return
	}

	if !s.eventsOn(cfg.Model.Unlinked) {
		return
	}

	err := queue.PublishModelUnlinked(eventPublisher{s.mqClient}, queue.ModelUnlinkedPayload{
		Model: ref,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicModelUnlinked)
}

func (s *VaultService) publishClientCreated(clientID, name string, auto bool) {
	if !s.eventsOn(configs.GetConfig().Events.Registry.ClientCreated) {
		return
	}

	err := queue.PublishClientCreated(eventPublisher{s.mqClient}, queue.ClientCreatedPayload{
		ClientID:    clientID,
		Name:        name,
		AutoCreated: auto,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicClientCreated)
}

func (s *VaultService) publishProjectLinked(storedName, clientID, projectID, description string, size int64) {
	if !s.eventsOn(configs.GetConfig().Events.Registry.ProjectLinked) {
		return
	}

	err := queue.PublishProjectLinked(eventPublisher{s.mqClient}, queue.ProjectLinkedPayload{
		Model: queue.ModelRef{
			StoredName: storedName,
			ClientID:   clientID,
			ProjectID:  projectID,
			Size:       size,
		},
		Description: description,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicProjectLinked)
}

func (s *VaultService) publishProjectRemoved(clientID, projectID, storedName string) {
	if !s.eventsOn(configs.GetConfig().Events.Registry.ProjectRemoved) {
		return
	}

	err := queue.PublishProjectRemoved(eventPublisher{s.mqClient}, queue.ProjectRemovedPayload{
		ClientID:   clientID,
		ProjectID:  projectID,
		StoredName: storedName,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicProjectRemoved)
}

func (s *VaultService) publishClientRemoved(clientID string, projectsRemoved, filesRetired int) {
	if !s.eventsOn(configs.GetConfig().Events.Registry.ClientRemoved) {
		return
	}

	err := queue.PublishClientRemoved(eventPublisher{s.mqClient}, queue.ClientRemovedPayload{
		ClientID:        clientID,
		ProjectsRemoved: projectsRemoved,
		FilesRetired:    filesRetired,
	}, queue.WithProducer(eventProducer))
	s.logPublishErr(err, queue.TopicClientRemoved)
}
