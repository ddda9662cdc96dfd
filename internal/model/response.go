package model

// ChatEvent SSE 流中的一个事件。
//
//	loading  开始等待首个 token
//	created  首个 token 到达，助手消息已创建（Message 带当前文本）
//	chunk    后续增量文本（Content 为 delta，前端自行累积）
//	final    定稿：指令剥离后的文本与卡片（Message 为最终状态）
//	image    追加的图片消息
//	system   本地命令等产生的系统消息
type ChatEvent struct {
	Type      string   `json:"type"`
	MessageID int64    `json:"message_id,omitempty"`
	Content   string   `json:"content,omitempty"`
	Message   *Message `json:"message,omitempty"`
	Timestamp int64    `json:"timestamp"`
}

const (
	EventLoading = "loading"
	EventCreated = "created"
	EventChunk   = "chunk"
	EventFinal   = "final"
	EventImage   = "image"
	EventSystem  = "system"
)

type LoginResponse struct {
	User     *UserProfile `json:"user"`
	Greeting *Message     `json:"greeting,omitempty"`
}

type HistoryResponse struct {
	Messages []Message `json:"messages"`
}

type MemoryResponse struct {
	Memory string `json:"memory"`
}
