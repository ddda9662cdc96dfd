// Package conversation 维护有序消息列表：追加为主，流式更新时按 id 原地替换。
package conversation

import (
	"fmt"
	"sync"

	"github.com/bwmarrin/snowflake"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

// Store 的每次变更都同步落盘（全量快照），外部读到的永远是最新状态。
// id→下标映射让流式 token 的按 id 替换保持 O(1)。
type Store struct {
	mu       sync.Mutex
	node     *snowflake.Node
	persist  storage.Store
	messages []model.Message
	index    map[int64]int
}

func New(persist storage.Store) (*Store, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, fmt.Errorf("snowflake node: %w", err)
	}

	return &Store{
		node:    node,
		persist: persist,
		index:   make(map[int64]int),
	}, nil
}

// Load 启动时恢复持久化的历史
func (s *Store) Load() error {
	history, err := s.persist.GetHistory()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = history
	s.index = make(map[int64]int, len(history))
	for i, msg := range history {
		s.index[msg.ID] = i
	}

	return nil
}

// NextID 分配严格递增的消息 id，快速连续调用也不会碰撞。
func (s *Store) NextID() int64 {
	return s.node.Generate().Int64()
}

func (s *Store) Append(msg model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, msg)
	s.index[msg.ID] = len(s.messages) - 1
	s.persistLocked()
}

// ReplaceByID 对指定消息应用变更；id 不存在时是 no-op，返回 false。
func (s *Store) ReplaceByID(id int64, mutate func(msg *model.Message)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return false
	}

	mutate(&s.messages[i])
	s.persistLocked()
	return true
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = nil
	s.index = make(map[int64]int)

	if err := s.persist.ClearHistory(); err != nil {
		logger.Errorf("Failed to clear persisted history: %v", err)
	}
}

// Messages 返回当前序列的副本
func (s *Store) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]model.Message, len(s.messages))
	copy(snapshot, s.messages)
	return snapshot
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.messages)
}

func (s *Store) persistLocked() {
	snapshot := make([]model.Message, len(s.messages))
	copy(snapshot, s.messages)

	if err := s.persist.SaveHistory(snapshot); err != nil {
		logger.Errorf("Failed to persist history: %v", err)
	}
}
