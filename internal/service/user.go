package service

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/ai"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

const guestGreeting = "Olá! Sou o Wesley. Como posso ajudar você hoje?"

var mockNames = []string{"Gabriel", "Leo", "Bruno", "Lucas", "Ana", "Bia"}

// Login 建立用户资料；首次进入（历史为空）时生成问候消息。
// 访客拿固定问候，具名用户走远端生成，失败退回固定句式。
func (s *ChatService) Login(ctx context.Context, name string, guest bool) (*model.UserProfile, *model.Message) {
	if guest {
		name = "Visitante"
	} else if strings.TrimSpace(name) == "" {
		name = mockNames[rand.Intn(len(mockNames))]
	}

	user := &model.UserProfile{
		Name:    name,
		Photo:   model.DefaultAvatar,
		IsGuest: guest,
	}

	if err := s.store.SaveUser(user); err != nil {
		logger.Errorf("Failed to save user: %v", err)
	}

	if s.conv.Len() > 0 {
		return user, nil
	}

	greeting := guestGreeting
	if !guest {
		memory := s.Memory()
		text, err := s.ai.Complete(ctx, ai.GreetingPrompt(name, memory))
		if err != nil || strings.TrimSpace(text) == "" {
			greeting = ai.FallbackGreeting(name)
		} else {
			greeting = strings.TrimSpace(text)
		}
	}

	msg := s.AddSystemMessage(greeting)
	return user, &msg
}

func (s *ChatService) GetUser() (*model.UserProfile, error) {
	return s.store.GetUser()
}

func (s *ChatService) SaveProfile(name, photo string) (*model.UserProfile, error) {
	user, err := s.store.GetUser()
	if err != nil {
		return nil, err
	}

	user.Name = name
	if photo != "" {
		user.Photo = photo
	} else {
		user.Photo = model.DefaultAvatar
	}

	if err := s.store.SaveUser(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *ChatService) GetSettings() (model.UserSettings, error) {
	return s.store.GetSettings()
}

func (s *ChatService) UpdateSettings(settings model.UserSettings) error {
	return s.store.SaveSettings(settings)
}

// SetVoiceMode 切换语音模式：关停播放，开播报提示语
func (s *ChatService) SetVoiceMode(enabled bool) {
	s.mu.Lock()
	s.voiceMode = enabled
	s.mu.Unlock()

	if !enabled {
		s.player.Stop()
		return
	}

	s.AddSystemMessage("Modo voz on. Pode falar.")
}

func (s *ChatService) VoiceMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.voiceMode
}

// ClearHistory 设置菜单里的清空路径：立刻确认，没有命令路径的延迟
func (s *ChatService) ClearHistory() model.Message {
	s.conv.Clear()
	return s.AddSystemMessage("Histórico apagado.")
}

// ToggleExpanded "阅读更多"开关，瞬态 UI 状态
func (s *ChatService) ToggleExpanded(id int64) bool {
	return s.conv.ReplaceByID(id, func(msg *model.Message) {
		msg.Expanded = !msg.Expanded
	})
}

// MarkCopied 复制反馈：置位后过固定间隔自动复位
func (s *ChatService) MarkCopied(id int64) bool {
	ok := s.conv.ReplaceByID(id, func(msg *model.Message) {
		msg.Copied = true
	})
	if !ok {
		return false
	}

	delay := s.opts.CopyFeedbackDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	time.AfterFunc(delay, func() {
		s.conv.ReplaceByID(id, func(msg *model.Message) {
			msg.Copied = false
		})
	})

	return true
}
