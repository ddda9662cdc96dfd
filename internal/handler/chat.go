package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/service"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/utils"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

// StreamChat 把一条用户消息变成 SSE 事件流。
// 事件序列见 model.ChatEvent；流以 [DONE] 收尾。
func (h *ChatHandler) StreamChat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sseWriter := utils.NewSSEWriter(c.Writer)

	// 图片生成可能拖很久，给个宽松的上限
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Minute)
	defer cancel()

	// 心跳防止空闲断连
	heartbeat := time.NewTicker(30 * time.Second)
	defer heartbeat.Stop()

	events := h.chatService.Send(ctx, req.Message, req.Image)

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				sseWriter.Close()
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				logger.Errorf("Failed to marshal event: %v", err)
				continue
			}

			if err := sseWriter.Write("message", string(data)); err != nil {
				logger.Errorf("Failed to write SSE: %v", err)
				return
			}

		case <-heartbeat.C:
			data, _ := json.Marshal(gin.H{
				"type":      "heartbeat",
				"timestamp": time.Now().Unix(),
			})
			if err := sseWriter.Write("heartbeat", string(data)); err != nil {
				logger.Warnf("Heartbeat write failed: %v", err)
				return
			}

		case <-ctx.Done():
			sseWriter.Close()
			return
		}
	}
}

func (h *ChatHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, greeting := h.chatService.Login(c.Request.Context(), req.Name, req.Guest)

	c.JSON(http.StatusOK, model.LoginResponse{
		User:     user,
		Greeting: greeting,
	})
}

func (h *ChatHandler) GetProfile(c *gin.Context) {
	user, err := h.chatService.GetUser()
	if err != nil {
		if err == storage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not logged in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ChatHandler) UpdateProfile(c *gin.Context) {
	var req model.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.chatService.SaveProfile(req.Name, req.Photo)
	if err != nil {
		if err == storage.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not logged in"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *ChatHandler) GetHistory(c *gin.Context) {
	c.JSON(http.StatusOK, model.HistoryResponse{
		Messages: h.chatService.Messages(),
	})
}

func (h *ChatHandler) ClearHistory(c *gin.Context) {
	ack := h.chatService.ClearHistory()
	c.JSON(http.StatusOK, gin.H{"ack": ack})
}

func (h *ChatHandler) GetSettings(c *gin.Context) {
	settings, err := h.chatService.GetSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ChatHandler) UpdateSettings(c *gin.Context) {
	var settings model.UserSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.chatService.UpdateSettings(settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func (h *ChatHandler) GetMemory(c *gin.Context) {
	c.JSON(http.StatusOK, model.MemoryResponse{
		Memory: h.chatService.Memory(),
	})
}

func (h *ChatHandler) SetVoiceMode(c *gin.Context) {
	var req model.VoiceModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.chatService.SetVoiceMode(req.Enabled)

	c.JSON(http.StatusOK, gin.H{"enabled": h.chatService.VoiceMode()})
}

func (h *ChatHandler) ToggleExpanded(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("message_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if !h.chatService.ToggleExpanded(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expanded toggled"})
}

func (h *ChatHandler) MarkCopied(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("message_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	if !h.chatService.MarkCopied(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Copy feedback set"})
}
