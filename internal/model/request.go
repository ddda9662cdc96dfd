package model

type ChatRequest struct {
	Message string `json:"message"`
	Image   string `json:"image"` // 可选，base64 data URI
}

type LoginRequest struct {
	Name  string `json:"name"`
	Guest bool   `json:"guest"`
}

type ProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Photo string `json:"photo"`
}

type VoiceModeRequest struct {
	Enabled bool `json:"enabled"`
}
