package storage

import (
	"sync"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

type MemoryStorage struct {
	mu          sync.RWMutex
	user        *model.UserProfile
	history     []model.Message
	settings    *model.UserSettings
	userMemory  string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Init() error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

func (m *MemoryStorage) Backup() error {
	return nil
}

func (m *MemoryStorage) GetUser() (*model.UserProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.user == nil {
		return nil, ErrNotFound
	}

	user := *m.user
	return &user, nil
}

func (m *MemoryStorage) SaveUser(user *model.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *user
	m.user = &copied
	return nil
}

func (m *MemoryStorage) GetHistory() ([]model.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	history := make([]model.Message, len(m.history))
	copy(history, m.history)
	return history, nil
}

func (m *MemoryStorage) SaveHistory(messages []model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = make([]model.Message, len(messages))
	copy(m.history, messages)
	return nil
}

func (m *MemoryStorage) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.history = nil
	return nil
}

func (m *MemoryStorage) GetSettings() (model.UserSettings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.settings == nil {
		return model.DefaultSettings(), nil
	}

	return *m.settings, nil
}

func (m *MemoryStorage) SaveSettings(settings model.UserSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings = &settings
	return nil
}

func (m *MemoryStorage) GetMemory() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.userMemory, nil
}

func (m *MemoryStorage) SaveMemory(memory string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.userMemory = memory
	return nil
}
