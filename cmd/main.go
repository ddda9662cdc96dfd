package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/ai"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/config"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/handler"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/service"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/speech"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/internal/storage"
	"github.com/weslleynogueiralucas-prog/parceiro-backend/pkg/logger"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	store := newStorage(cfg)

	aiClient, err := ai.NewClient(context.Background(), cfg.Provider)
	if err != nil {
		logger.Fatalf("Failed to init AI client: %v", err)
	}

	// 服务端没有扬声器，默认 Noop；接真实 TTS 时换实现即可
	player := speech.NewPlayer(speech.NoopSynthesizer{})

	chatService, err := service.New(store, aiClient, player, service.Options{
		MemoryThreshold:   cfg.Chat.MemoryThreshold,
		ClearAckDelay:     cfg.Chat.ClearAckDelay,
		CopyFeedbackDelay: cfg.Chat.CopyFeedbackDelay,
		MediaDir:          cfg.Storage.MediaDir,
	})
	if err != nil {
		logger.Fatalf("Failed to init chat service: %v", err)
	}

	chatHandler := handler.NewChatHandler(chatService)

	router := setupRouter(cfg, chatHandler)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("服务器启动在端口 %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("服务器正在关闭...")
	if err := store.Close(); err != nil {
		logger.Errorf("存储关闭失败: %v", err)
	}
	if err := server.Close(); err != nil {
		logger.Errorf("服务器关闭失败: %v", err)
	}
	logger.Info("服务器已关闭")
}

// newStorage 按配置选存储后端；磁盘初始化失败退回内存，服务照常起
func newStorage(cfg *config.Config) storage.Store {
	if cfg.Storage.Type == "memory" {
		return storage.NewMemoryStorage()
	}

	disk := storage.NewDiskStorage(cfg.Storage.DataDir)
	if err := disk.Init(); err != nil {
		logger.Errorf("Disk storage init failed, falling back to memory: %v", err)
		return storage.NewMemoryStorage()
	}

	return disk
}

func setupRouter(cfg *config.Config, chatHandler *handler.ChatHandler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	api := router.Group("/api")
	{
		chat := api.Group("/chat")
		{
			chat.POST("/stream", chatHandler.StreamChat)
			chat.POST("/login", chatHandler.Login)
			chat.GET("/profile", chatHandler.GetProfile)
			chat.PUT("/profile", chatHandler.UpdateProfile)
			chat.GET("/history", chatHandler.GetHistory)
			chat.DELETE("/history", chatHandler.ClearHistory)
			chat.GET("/settings", chatHandler.GetSettings)
			chat.PUT("/settings", chatHandler.UpdateSettings)
			chat.GET("/memory", chatHandler.GetMemory)
			chat.POST("/voice-mode", chatHandler.SetVoiceMode)
			chat.POST("/message/:message_id/expanded", chatHandler.ToggleExpanded)
			chat.POST("/message/:message_id/copied", chatHandler.MarkCopied)
		}
	}

	return router
}
