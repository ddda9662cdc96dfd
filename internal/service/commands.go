package service

import (
	"strings"
	"time"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

const clearAckText = "Tudo limpo. Manda a boa."

// 清空会话的保留短语，大小写不敏感、先 trim 再精确匹配
var localCommands = []string{"limpar chat", "clear", "limpar"}

// tryLocalCommand 命中保留短语时本地处理，返回 true 表示不再走远端。
// 确认消息延迟入队只是为了"先清空再确认"的节奏，不是正确性要求。
func (s *ChatService) tryLocalCommand(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, cmd := range localCommands {
		if lower != cmd {
			continue
		}

		s.conv.Clear()

		if s.opts.ClearAckDelay > 0 {
			time.AfterFunc(s.opts.ClearAckDelay, func() {
				s.AddSystemMessage(clearAckText)
			})
		} else {
			s.AddSystemMessage(clearAckText)
		}

		return true
	}

	return false
}

// AddSystemMessage 追加一条现成的 AI 消息（问候、确认等），语音模式下播报。
func (s *ChatService) AddSystemMessage(text string) model.Message {
	msg := model.Message{
		ID:        s.conv.NextID(),
		Sender:    model.SenderAI,
		Text:      text,
		Timestamp: time.Now(),
	}
	s.conv.Append(msg)

	if s.VoiceMode() {
		if settings, err := s.store.GetSettings(); err == nil {
			s.player.Speak(text, settings.VoiceURI, settings.VoiceRate)
		}
	}

	return msg
}
