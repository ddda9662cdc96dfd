package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/directive"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

const (
	// 图片指令把正文吃光时的占位答复，AI 消息不允许空白
	fillerGeneratingImage = "Pode deixar, gerando sua imagem..."

	captionPlain    = "Tá na mão!"
	captionWithCard = "Se liga no card."
)

// processPost 在流结束后定稿消息：剥离指令、按需生成图片、
// 语音播报、触发记忆合并。任何远端失败都静默降级。
func (s *ChatService) processPost(ctx context.Context, finalText string, aiMsgID int64, userText string, events chan<- model.ChatEvent) {
	res := directive.Parse(finalText)

	if res.HasImage {
		cleanText := res.CleanText
		if cleanText == "" {
			cleanText = fillerGeneratingImage
		}

		// 评论文本先可见，图片随后才到
		s.finalizeMessage(aiMsgID, cleanText, res.Card, events)

		if image, ok := s.ai.GenerateImage(ctx, res.ImagePrompt); ok {
			caption := captionPlain
			if res.Card != nil {
				caption = captionWithCard
			}

			imgMsg := model.Message{
				ID:        s.conv.NextID(),
				Sender:    model.SenderAI,
				Text:      caption,
				ImageURL:  image,
				Timestamp: time.Now(),
			}
			s.conv.Append(imgMsg)
			emit(events, model.ChatEvent{Type: model.EventImage, MessageID: imgMsg.ID, Message: &imgMsg})

			if settings, err := s.store.GetSettings(); err == nil && settings.AutoSaveMedia {
				s.saveMedia(image, imgMsg.ID)
			}
		}
	} else {
		s.finalizeMessage(aiMsgID, res.CleanText, res.Card, events)

		if s.VoiceMode() {
			if settings, err := s.store.GetSettings(); err == nil {
				s.player.Speak(res.CleanText, settings.VoiceURI, settings.VoiceRate)
			}
		}
	}

	s.checkAndLearn(ctx, userText, finalText)
}

func (s *ChatService) finalizeMessage(aiMsgID int64, cleanText string, card *model.GameCard, events chan<- model.ChatEvent) {
	var finalized *model.Message
	s.conv.ReplaceByID(aiMsgID, func(msg *model.Message) {
		msg.Text = cleanText
		if card != nil {
			msg.GameCard = card
		}
		copied := *msg
		finalized = &copied
	})

	if finalized != nil {
		emit(events, model.ChatEvent{Type: model.EventFinal, MessageID: aiMsgID, Message: finalized})
	}
}

// saveMedia 自动保存生成的图片（浏览器下载的服务端对应物）
func (s *ChatService) saveMedia(dataURI string, id int64) {
	if s.opts.MediaDir == "" {
		return
	}

	idx := strings.Index(dataURI, ",")
	if idx < 0 {
		return
	}

	data, err := base64.StdEncoding.DecodeString(dataURI[idx+1:])
	if err != nil {
		logger.Warnf("Failed to decode generated image: %v", err)
		return
	}

	if err := os.MkdirAll(s.opts.MediaDir, 0755); err != nil {
		logger.Warnf("Failed to create media dir: %v", err)
		return
	}

	path := filepath.Join(s.opts.MediaDir, fmt.Sprintf("wesley_art_%d.jpg", id))
	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Warnf("Failed to save media: %v", err)
		return
	}

	logger.Infof("Saved generated media: %s", path)
}
