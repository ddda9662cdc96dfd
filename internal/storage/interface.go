package storage

import (
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/model"
)

// Store 按键持久化用户资料、历史、设置和自由文本记忆。
// 读取缺失键时返回文档化的默认值（用户除外，用户缺失返回 ErrNotFound）。
type Store interface {
	// 用户资料
	GetUser() (*model.UserProfile, error)
	SaveUser(user *model.UserProfile) error

	// 会话历史（有序全量快照）
	GetHistory() ([]model.Message, error)
	SaveHistory(messages []model.Message) error
	ClearHistory() error

	// 设置
	GetSettings() (model.UserSettings, error)
	SaveSettings(settings model.UserSettings) error

	// 长期记忆
	GetMemory() (string, error)
	SaveMemory(memory string) error

	// 存储管理
	Init() error
	Close() error
	Backup() error
}
