// Package mq 提供基于 Watermill 库的消息发布与订阅封装.
//
// 登记事件是旁路通知，采用进程内 GoChannel 实现：发布失败不影响主流程，
// 进程退出即丢弃，与登记表的易失性语义一致.
package mq

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/modelvault/modelvault/pkg/configs"
	nlog "github.com/modelvault/modelvault/pkg/log"
)

// Client 封装 watermill Publisher 与 Subscriber.
type Client struct {
	pubsub *gochannel.GoChannel
}

// Publish 便捷发布.
func (c *Client) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	if c == nil || c.pubsub == nil {
		return fmt.Errorf("mq publisher not initialized")
	}

	for _, m := range msgs {
		if err := c.pubsub.Publish(topic, m); err != nil {
			return err
		}
	}

	return nil
}

// Subscribe 便捷订阅.
func (c *Client) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if c == nil || c.pubsub == nil {
		return nil, fmt.Errorf("mq subscriber not initialized")
	}

	return c.pubsub.Subscribe(ctx, topic)
}

// Close 关闭资源.
func (c *Client) Close() error {
	if c == nil || c.pubsub == nil {
		return nil
	}

	return c.pubsub.Close()
}

var (
	mqOnce sync.Once
	mqInst *Client
)

// New 初始化消息队列（单例）.
func New(ctx context.Context) (*Client, error) {
	mqOnce.Do(func() {
		cfg := configs.GetConfig().Events

		pubsub := gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: cfg.BufferSize,
		}, &zerologAdapter{l: nlog.Logger()})

		mqInst = &Client{pubsub: pubsub}

		nlog.Logger().Info().Int64("buffer_size", cfg.BufferSize).Msg("event bus initialized")
	})

	return mqInst, nil
}
