package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Provider ProviderConfig `mapstructure:"provider"`
	Chat     ChatConfig     `mapstructure:"chat"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

// ProviderConfig selects which remote model backs the assistant. The chat
// pipeline never sees provider details; it talks to the eino ChatModel.
type ProviderConfig struct {
	Name   string       `mapstructure:"name"`
	OpenAI OpenAIConfig `mapstructure:"openai"`
	Ark    ArkConfig    `mapstructure:"ark"`
	Qwen   QwenConfig   `mapstructure:"qwen"`
}

type OpenAIConfig struct {
	APIKey     string `mapstructure:"api_key"`
	BaseURL    string `mapstructure:"base_url"`
	Model      string `mapstructure:"model"`
	ImageModel string `mapstructure:"image_model"`
}

type ArkConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type QwenConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Temperature float32       `mapstructure:"temperature"`
	TopP        float32       `mapstructure:"top_p"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type ChatConfig struct {
	MemoryThreshold   int           `mapstructure:"memory_threshold"`
	ClearAckDelay     time.Duration `mapstructure:"clear_ack_delay"`
	CopyFeedbackDelay time.Duration `mapstructure:"copy_feedback_delay"`
}

type SpeechConfig struct {
	Language string `mapstructure:"language"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StorageConfig struct {
	Type     string `mapstructure:"type"`
	DataDir  string `mapstructure:"data_dir"`
	MediaDir string `mapstructure:"media_dir"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("PARCEIRO")

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 配置文件优先；文件里没有的密钥退回到环境变量
	if cfg.Provider.OpenAI.APIKey == "" {
		cfg.Provider.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.Provider.Ark.APIKey == "" {
		cfg.Provider.Ark.APIKey = os.Getenv("ARK_API_KEY")
	}
	if cfg.Provider.Qwen.APIKey == "" {
		cfg.Provider.Qwen.APIKey = os.Getenv("DASHSCOPE_API_KEY")
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30m")
	viper.SetDefault("server.max_header_bytes", 1<<20)

	viper.SetDefault("provider.name", "openai")
	viper.SetDefault("provider.openai.model", "gpt-4o-mini")
	viper.SetDefault("provider.openai.image_model", "dall-e-3")

	viper.SetDefault("chat.memory_threshold", 5)
	viper.SetDefault("chat.clear_ack_delay", "500ms")
	viper.SetDefault("chat.copy_feedback_delay", "2s")

	viper.SetDefault("speech.language", "pt-BR")

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("storage.type", "disk")
	viper.SetDefault("storage.data_dir", "./data")
	viper.SetDefault("storage.media_dir", "./data/media")
}

func Get() *Config {
	return cfg
}
