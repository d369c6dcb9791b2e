package database

import (
	"expertline/internal/config"
	"expertline/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认官方话题（空库时插入）
	var count int64
	db.Model(&model.Topic{}).Count(&count)
	if count == 0 {
		defaultTopics := []model.Topic{
			{Name: "javascript", SubTopics: "closures,promises,async-await", Info: "JavaScript language patterns", IsOfficial: true},
			{Name: "react", SubTopics: "hooks,state,effects", Info: "React component patterns", IsOfficial: true},
			{Name: "algorithms", SubTopics: "recursion,sorting,search,memoization", Info: "Classic algorithm implementations", IsOfficial: true},
			{Name: "database", SubTopics: "sql,indexing,query-optimization", Info: "Database access patterns", IsOfficial: true},
			{Name: "css", SubTopics: "flexbox,grid,layout", Info: "Styling and layout techniques", IsOfficial: true},
		}
		for _, t := range defaultTopics {
			db.Create(&t)
		}
	}

	return db, nil
}

// Migrate 同步全部实体表结构
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Post{},
		&model.Comment{},
		&model.Vote{},
		&model.TopicRequest{},
	)
}
