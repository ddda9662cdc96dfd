package ai

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	einoModel "github.com/cloudwego/eino/components/model"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/config"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// newChatModel 按配置创建聊天模型。上层只依赖 eino 的 ChatModel 接口，
// 换 provider 不影响会话逻辑。
func newChatModel(ctx context.Context, cfg config.ProviderConfig) (einoModel.ChatModel, error) {
	switch cfg.Name {
	case "openai":
		return newOpenAIChatModel(cfg.OpenAI)
	case "ark":
		return createArkModel(ctx, cfg.Ark)
	case "qwen":
		return createQwenModel(ctx, cfg.Qwen)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Name)
	}
}

func createArkModel(ctx context.Context, cfg config.ArkConfig) (einoModel.ChatModel, error) {
	logger.Infof("Using Ark model: %s", cfg.Model)

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		CustomHeader: map[string]string{
			"X-Ark-Thinking-Mode": "disable",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create ark model: %w", err)
	}

	return chatModel, nil
}

func createQwenModel(ctx context.Context, cfg config.QwenConfig) (einoModel.ChatModel, error) {
	logger.Infof("Using Qwen model: %s, BaseURL: %s", cfg.Model, cfg.BaseURL)

	httpClient := &http.Client{Timeout: cfg.Timeout}

	chatModel, err := qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &cfg.MaxTokens,
		Temperature: &cfg.Temperature,
		TopP:        &cfg.TopP,
		Timeout:     cfg.Timeout,
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("create qwen model: %w", err)
	}

	return chatModel, nil
}

// newImageGenerator 图像生成仅 openai 系 provider 支持；其余 provider
// 返回 nil，调用方按"生成失败"处理（fail-soft）。
func newImageGenerator(cfg config.ProviderConfig) ImageGenerator {
	if cfg.Name == "openai" {
		return newOpenAIImageGenerator(cfg.OpenAI)
	}

	logger.Warnf("Image generation not available for provider %s", cfg.Name)
	return nil
}
