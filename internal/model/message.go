package model

import "time"

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// Message 会话中的一条消息。ID 由 snowflake 分配，按创建顺序可排序。
// Text 在流式输出期间可变，定稿后不再改动。
type Message struct {
	ID        int64     `json:"id"`
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	ImageURL  string    `json:"imageUrl,omitempty"` // base64 data URI
	GameCard  *GameCard `json:"gameCard,omitempty"`
	Timestamp time.Time `json:"timestamp"`

	// 瞬态 UI 状态，不属于会话语义
	Expanded bool `json:"expanded,omitempty"`
	Copied   bool `json:"copied,omitempty"`
}

// GameCard 从 AI 文本中解析出的结构化游戏卡片，仅由指令解析产生。
type GameCard struct {
	Title      string    `json:"title"`
	Genre      string    `json:"genre"`
	Platform   string    `json:"platform"`
	Score      int       `json:"score"` // 0-100
	Difficulty string    `json:"difficulty"`
	Playtime   string    `json:"playtime"`
	Stats      CardStats `json:"stats"`
	Summary    string    `json:"summary"`
}

type CardStats struct {
	Graphics int `json:"graphics"`
	Gameplay int `json:"gameplay"`
	Story    int `json:"story"`
	Sound    int `json:"sound"`
}

type UserProfile struct {
	Name    string `json:"name"`
	Photo   string `json:"photo"`
	IsGuest bool   `json:"isGuest"`
}

type UserSettings struct {
	AutoSaveMedia bool    `json:"autoSaveMedia"`
	VoiceURI      string  `json:"voiceURI"`
	VoiceRate     float64 `json:"voiceRate"`
}

// DefaultSettings 存储缺失时的文档化默认值
func DefaultSettings() UserSettings {
	return UserSettings{
		AutoSaveMedia: false,
		VoiceURI:      "",
		VoiceRate:     1.1,
	}
}

const DefaultAvatar = "https://picsum.photos/seed/gamer/200/200"
