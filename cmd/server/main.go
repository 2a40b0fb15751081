package main

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shariqazeem/umanity-social/internal/config"
	"github.com/shariqazeem/umanity-social/internal/database"
	"github.com/shariqazeem/umanity-social/internal/event"
	"github.com/shariqazeem/umanity-social/internal/logger"
	"github.com/shariqazeem/umanity-social/internal/model"
	"github.com/shariqazeem/umanity-social/internal/router"
	"github.com/shariqazeem/umanity-social/internal/task"
)

func main() {
	// 加载配置
	cfg := config.Load()

	// 初始化日志
	initLogger(cfg.Log)
	defer logger.Sync()

	// 初始化数据库
	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// 启动事件分发器
	dispatcher, err := event.NewDispatcher(db, cfg.Event.Workers, time.Duration(cfg.Event.Interval)*time.Millisecond)
	if err != nil {
		logger.Fatal("Failed to create event dispatcher: %v", err)
	}
	dispatcher.Subscribe(func(ev model.Event) {
		logger.Info("Event %s: type=%s pool=%s campaign=%s", ev.EventID, ev.EventType, ev.PoolAddress, ev.CampaignAddress)
	})
	dispatcher.Start()
	defer dispatcher.Stop()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 初始化路由
	r := router.Setup(db)

	// 启动定时任务
	manager := task.Start(db, cfg)
	defer manager.Stop()

	// 启动服务器
	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}

// initLogger 根据配置初始化全局日志
func initLogger(cfg config.LogConfig) {
	level := logger.ParseLogLevel(cfg.Level)

	var l *logger.Logger
	var err error
	if cfg.Output == "file" {
		l, err = logger.NewWithFileRotation(level, cfg.File)
	} else {
		l, err = logger.New(level)
	}
	if err != nil {
		panic(err)
	}
	logger.SetDefaultLogger(l)
}
