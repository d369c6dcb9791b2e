package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expertline/internal/model"
	"expertline/internal/repository"
	"expertline/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PostService struct {
	PostRepo  *repository.PostRepository
	TopicRepo *repository.TopicRepository
	Redis     *redis.Client
	Logger    *zap.Logger
}

func NewPostService(postRepo *repository.PostRepository, topicRepo *repository.TopicRepository, rdb *redis.Client, logger *zap.Logger) *PostService {
	return &PostService{PostRepo: postRepo, TopicRepo: topicRepo, Redis: rdb, Logger: logger}
}

type CreatePostRequest struct {
	Title       string   `json:"title" binding:"required"`
	Code        string   `json:"code" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Categories  []string `json:"categories" binding:"required,min=1,max=3"`
	TopicID     string   `json:"topicId"`
	SubTopics   []string `json:"subTopics" binding:"max=5"`
}

// Create 新帖初始票数为零，比值按零票口径算好再入库；
// 关联话题的聚合更新失败不回滚帖子，只记日志
func (s *PostService) Create(authorID, username string, req CreatePostRequest) (*model.Post, error) {
	var topicID *string
	if req.TopicID != "" {
		if _, err := s.TopicRepo.FindByID(req.TopicID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrTopicNotFound
			}
			return nil, err
		}
		topicID = &req.TopicID
	}

	post := &model.Post{
		Title:       req.Title,
		Code:        req.Code,
		Description: req.Description,
		Categories:  util.JoinCSV(req.Categories),
		TopicID:     topicID,
		SubTopics:   util.JoinCSV(req.SubTopics),
		AuthorID:    authorID,
		Username:    username,
	}
	post.RecalcRatios()

	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}

	if topicID != nil {
		if err := s.TopicRepo.AttachPost(*topicID, post.ID); err != nil {
			s.Logger.Warn("更新话题聚合失败", zap.String("topic_id", *topicID), zap.Error(err))
		}
	}

	return post, nil
}

func (s *PostService) List(page, pageSize int, topicID string) ([]model.Post, int64, error) {
	offset := (page - 1) * pageSize
	return s.PostRepo.FindWithPagination(offset, pageSize, topicID)
}

// Get 拉详情顺带记一次浏览。同一 IP 24 小时内只算一次，
// 用 Redis SETNX 去重，Redis 不可用时直接跳过计数。
func (s *PostService) Get(ctx context.Context, id, viewerIP string) (*model.Post, error) {
	post, err := s.PostRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	if post.TopicID != nil && s.Redis != nil && viewerIP != "" {
		key := fmt.Sprintf("view:post:%s:%s", id, viewerIP)
		ok, err := s.Redis.SetNX(ctx, key, 1, 24*time.Hour).Result()
		if err != nil {
			s.Logger.Debug("浏览去重失败", zap.Error(err))
		} else if ok {
			if err := s.TopicRepo.IncrementViews(*post.TopicID); err != nil {
				s.Logger.Warn("话题浏览计数失败", zap.Error(err))
			}
		}
	}

	return post, nil
}
