package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/ai"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// checkAndLearn 每完成一轮对话计一次数；到达阈值就把最近一轮折叠进
// 长期记忆。计数器只活在进程里，重启归零——这是"至少每 N 轮"策略，
// 不保证跨会话精确计数。
func (s *ChatService) checkAndLearn(ctx context.Context, userText, aiText string) {
	s.mu.Lock()
	s.exchangeCount++
	if s.exchangeCount < s.opts.MemoryThreshold {
		s.mu.Unlock()
		return
	}
	s.exchangeCount = 0
	s.mu.Unlock()

	transcript := fmt.Sprintf("User: %s\nAI: %s", userText, aiText)

	currentMemory, err := s.store.GetMemory()
	if err != nil {
		logger.Errorf("Failed to read memory: %v", err)
		return
	}

	newMemory, err := s.ai.Complete(ctx, ai.ProfilerPrompt(currentMemory, transcript))
	if err != nil {
		// 远端失败视为"记忆不变"
		logger.Warnf("Memory consolidation failed: %v", err)
		return
	}

	newMemory = strings.TrimSpace(newMemory)
	if newMemory == "" || newMemory == currentMemory {
		return
	}

	if err := s.store.SaveMemory(newMemory); err != nil {
		logger.Errorf("Failed to save memory: %v", err)
	}
}

// ExchangeCount 当前计数，测试用
func (s *ChatService) ExchangeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.exchangeCount
}
