package ai

import (
	"context"
	"fmt"
	"io"

	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	openai "github.com/sashabaranov/go-openai"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/config"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// openaiChatModel 把 go-openai 客户端适配成 eino 的 ChatModel 接口
type openaiChatModel struct {
	client *openai.Client
	model  string
}

func newOpenAIChatModel(cfg config.OpenAIConfig) (*openaiChatModel, error) {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openaiChatModel{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

func (m *openaiChatModel) Generate(ctx context.Context, messages []*schema.Message, opts ...einoModel.Option) (*schema.Message, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: m.convertMessages(messages),
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return &schema.Message{
		Role:    schema.Assistant,
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (m *openaiChatModel) Stream(ctx context.Context, messages []*schema.Message, opts ...einoModel.Option) (*schema.StreamReader[*schema.Message], error) {
	stream, err := m.client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:    m.model,
		Messages: m.convertMessages(messages),
		Stream:   true,
	})
	if err != nil {
		return nil, err
	}

	reader, writer := schema.Pipe[*schema.Message](100)

	go func() {
		defer writer.Close()
		defer stream.Close()

		for {
			response, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					writer.Send(nil, err)
				}
				return
			}

			if len(response.Choices) > 0 && response.Choices[0].Delta.Content != "" {
				writer.Send(&schema.Message{
					Role:    schema.Assistant,
					Content: response.Choices[0].Delta.Content,
				}, nil)
			}
		}
	}()

	return reader, nil
}

func (m *openaiChatModel) BindTools(tools []*schema.ToolInfo) error {
	// 本系统没有 function calling；副作用走文本指令
	return nil
}

func (m *openaiChatModel) convertMessages(messages []*schema.Message) []openai.ChatCompletionMessage {
	var result []openai.ChatCompletionMessage
	for _, msg := range messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == schema.Assistant {
			role = openai.ChatMessageRoleAssistant
		} else if msg.Role == schema.System {
			role = openai.ChatMessageRoleSystem
		}

		// 跳过空的 assistant 消息，部分后端会拒绝
		if msg.Content == "" && len(msg.MultiContent) == 0 && role == openai.ChatMessageRoleAssistant {
			continue
		}

		if len(msg.MultiContent) > 0 {
			var parts []openai.ChatMessagePart
			for _, part := range msg.MultiContent {
				switch part.Type {
				case schema.ChatMessagePartTypeImageURL:
					if part.ImageURL != nil {
						parts = append(parts, openai.ChatMessagePart{
							Type:     openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{URL: part.ImageURL.URL},
						})
					}
				default:
					parts = append(parts, openai.ChatMessagePart{
						Type: openai.ChatMessagePartTypeText,
						Text: part.Text,
					})
				}
			}
			result = append(result, openai.ChatCompletionMessage{
				Role:         role,
				MultiContent: parts,
			})
			continue
		}

		result = append(result, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	return result
}

// openaiImageGenerator 通过 images API 生成图片，返回 base64 data URI
type openaiImageGenerator struct {
	client *openai.Client
	model  string
}

func newOpenAIImageGenerator(cfg config.OpenAIConfig) *openaiImageGenerator {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openaiImageGenerator{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.ImageModel,
	}
}

// GenerateImage 失败返回 ("", false)，绝不向上抛错
func (g *openaiImageGenerator) GenerateImage(ctx context.Context, prompt string) (string, bool) {
	resp, err := g.client.CreateImage(ctx, openai.ImageRequest{
		Model:          g.model,
		Prompt:         prompt,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		ResponseFormat: openai.CreateImageResponseFormatB64JSON,
	})
	if err != nil {
		logger.Warnf("Image generation failed: %v", err)
		return "", false
	}

	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return "", false
	}

	return "data:image/jpeg;base64," + resp.Data[0].B64JSON, true
}
