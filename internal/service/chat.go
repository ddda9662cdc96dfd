package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/conversation"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/speech"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// AIClient 远端生成模型的边界。所有实现都必须 fail-soft：
// 图像生成用缺席表达失败，Complete 的错误由调用方映射成回退值。
type AIClient interface {
	InitChat(userMemory string)
	StreamMessage(ctx context.Context, text, imageDataURI string) (*schema.StreamReader[*schema.Message], error)
	RecordReply(text string)
	Complete(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string) (string, bool)
}

type Options struct {
	MemoryThreshold   int
	ClearAckDelay     time.Duration
	CopyFeedbackDelay time.Duration
	MediaDir          string
}

type ChatService struct {
	store  storage.Store
	conv   *conversation.Store
	ai     AIClient
	player *speech.Player
	opts   Options

	loading atomic.Bool

	mu            sync.Mutex
	voiceMode     bool
	exchangeCount int
}

func New(store storage.Store, aiClient AIClient, player *speech.Player, opts Options) (*ChatService, error) {
	if opts.MemoryThreshold <= 0 {
		opts.MemoryThreshold = 5
	}
	if player == nil {
		player = speech.NewPlayer(nil)
	}

	conv, err := conversation.New(store)
	if err != nil {
		return nil, err
	}

	if err := conv.Load(); err != nil {
		logger.Errorf("Failed to load history: %v", err)
	}

	memory, err := store.GetMemory()
	if err != nil {
		logger.Errorf("Failed to load user memory: %v", err)
		memory = ""
	}
	aiClient.InitChat(memory)

	return &ChatService{
		store:  store,
		conv:   conv,
		ai:     aiClient,
		player: player,
		opts:   opts,
	}, nil
}

// Send 驱动一次完整的请求/响应周期。事件通道在后处理（图像生成、
// 记忆合并）结束后关闭；并发调用互不干扰，各自更新自己的 AI 消息。
func (s *ChatService) Send(ctx context.Context, text, attachedImage string) <-chan model.ChatEvent {
	events := make(chan model.ChatEvent, 64)

	text = strings.TrimSpace(text)
	if text == "" && attachedImage == "" {
		close(events)
		return events
	}

	go func() {
		defer close(events)
		s.run(ctx, text, attachedImage, events)
	}()

	return events
}

func (s *ChatService) run(ctx context.Context, text, attachedImage string, events chan<- model.ChatEvent) {
	// 用户消息先于任何远端调用落盘
	userMsg := model.Message{
		ID:        s.conv.NextID(),
		Sender:    model.SenderUser,
		Text:      text,
		ImageURL:  attachedImage,
		Timestamp: time.Now(),
	}
	s.conv.Append(userMsg)

	if s.tryLocalCommand(text) {
		return
	}

	s.loading.Store(true)
	emit(events, model.ChatEvent{Type: model.EventLoading})

	aiMsgID := s.conv.NextID()

	stream, err := s.ai.StreamMessage(ctx, text, attachedImage)
	if err != nil {
		logger.Errorf("Failed to open stream: %v", err)
		s.loading.Store(false)
		return
	}
	defer stream.Close()

	var full strings.Builder
	messageCreated := false

	for {
		chunk, err := stream.Recv()
		if err != nil {
			if err == io.EOF {
				break
			}
			// 流中断：保留已到达的内容，不做后处理，不惊动用户
			logger.Errorf("Stream error: %v", err)
			s.loading.Store(false)
			return
		}

		if chunk == nil || chunk.Content == "" {
			continue
		}

		full.WriteString(chunk.Content)

		if !messageCreated {
			s.loading.Store(false)
			aiMsg := model.Message{
				ID:        aiMsgID,
				Sender:    model.SenderAI,
				Text:      full.String(),
				Timestamp: time.Now(),
			}
			s.conv.Append(aiMsg)
			messageCreated = true
			emit(events, model.ChatEvent{Type: model.EventCreated, MessageID: aiMsgID, Message: &aiMsg})
			continue
		}

		// 全量覆盖，存储永远等于累积结果
		accumulated := full.String()
		s.conv.ReplaceByID(aiMsgID, func(msg *model.Message) {
			msg.Text = accumulated
		})
		emit(events, model.ChatEvent{Type: model.EventChunk, MessageID: aiMsgID, Content: chunk.Content})
	}

	if !messageCreated {
		// 零 token：不留消息，指示器照常清掉
		s.loading.Store(false)
		return
	}

	s.ai.RecordReply(full.String())
	s.processPost(ctx, full.String(), aiMsgID, text, events)
}

func emit(events chan<- model.ChatEvent, ev model.ChatEvent) {
	ev.Timestamp = time.Now().Unix()
	events <- ev
}

// Loading 流是否还在等首个 token
func (s *ChatService) Loading() bool {
	return s.loading.Load()
}

func (s *ChatService) Messages() []model.Message {
	return s.conv.Messages()
}

func (s *ChatService) Memory() string {
	memory, err := s.store.GetMemory()
	if err != nil {
		return ""
	}

	return memory
}
