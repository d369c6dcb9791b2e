package main

import (
	"flag"
	"log"

	"expertline/internal/config"
	"expertline/pkg/database"
	"expertline/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		numUsers = flag.Int("users", 10, "要生成的用户数量")
		numPosts = flag.Int("posts", 50, "要生成的帖子数量")
	)
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("连接数据库失败", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Log.Fatal("数据库迁移失败", zap.Error(err))
	}

	Seed(db, logger.Log, *numUsers, *numPosts)
}
