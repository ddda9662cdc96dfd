// Package ai 是远端生成模型的边界层：流式聊天、单次补全、图像生成。
// 会话状态（system instruction + 历史）也住在这里，服务层不碰 provider 细节。
package ai

import (
	"context"
	"sync"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/config"
)

// ImageGenerator 失败用缺席表达（ok=false），不抛异常。
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, bool)
}

type Client struct {
	chatModel einoModel.ChatModel
	imager    ImageGenerator

	mu      sync.Mutex
	system  string
	history []*schema.Message
}

func NewClient(ctx context.Context, cfg config.ProviderConfig) (*Client, error) {
	chatModel, err := newChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		chatModel: chatModel,
		imager:    newImageGenerator(cfg),
	}, nil
}

// InitChat 重建会话：把用户记忆织进 system instruction，历史清零。
func (c *Client) InitChat(userMemory string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.system = systemInstruction(userMemory)
	c.history = nil
}

// StreamMessage 打开一次 token 流。用户消息立刻进入会话历史；
// 助手回复由调用方在流结束后通过 RecordReply 补录。
func (c *Client) StreamMessage(ctx context.Context, text, imageDataURI string) (*schema.StreamReader[*schema.Message], error) {
	userMsg := buildUserMessage(text, imageDataURI)

	c.mu.Lock()
	if c.system == "" {
		c.system = systemInstruction("")
	}
	c.history = append(c.history, userMsg)

	messages := make([]*schema.Message, 0, len(c.history)+1)
	messages = append(messages, schema.SystemMessage(c.system))
	messages = append(messages, c.history...)
	c.mu.Unlock()

	return c.chatModel.Stream(ctx, messages)
}

// RecordReply 把完整的助手回复（含未剥离的指令文本）记入会话历史
func (c *Client) RecordReply(text string) {
	if text == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.history = append(c.history, schema.AssistantMessage(text, nil))
}

// Complete 单次非流式补全，用于记忆合并和问候语生成。
// 调用方负责把失败映射成回退值。
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.chatModel.Generate(ctx, []*schema.Message{
		schema.UserMessage(prompt),
	})
	if err != nil {
		return "", err
	}

	return resp.Content, nil
}

func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	if c.imager == nil {
		return "", false
	}

	return c.imager.GenerateImage(ctx, prompt)
}

func buildUserMessage(text, imageDataURI string) *schema.Message {
	if imageDataURI == "" {
		return schema.UserMessage(text)
	}

	if text == "" {
		text = visionFallbackPrompt
	}

	return &schema.Message{
		Role: schema.User,
		MultiContent: []schema.ChatMessagePart{
			{
				Type:     schema.ChatMessagePartTypeImageURL,
				ImageURL: &schema.ChatMessageImageURL{URL: imageDataURI},
			},
			{
				Type: schema.ChatMessagePartTypeText,
				Text: text,
			},
		},
	}
}
