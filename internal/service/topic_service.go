package service

import (
	"errors"

	"expertline/internal/model"
	"expertline/internal/repository"
	"expertline/internal/util"

	"gorm.io/gorm"
)

var ErrTopicExists = errors.New("topic already exists")

type TopicService struct {
	TopicRepo *repository.TopicRepository
}

func NewTopicService(topicRepo *repository.TopicRepository) *TopicService {
	return &TopicService{TopicRepo: topicRepo}
}

type CreateTopicRequest struct {
	Name       string   `json:"name" binding:"required,min=2,max=100"`
	SubTopics  []string `json:"subTopics" binding:"max=10"`
	Info       string   `json:"info"`
	IsOfficial bool     `json:"isOfficial"`
}

func (s *TopicService) List(page, pageSize int) ([]model.Topic, int64, error) {
	offset := (page - 1) * pageSize
	return s.TopicRepo.FindWithPagination(offset, pageSize)
}

func (s *TopicService) Get(id string) (*model.Topic, error) {
	topic, err := s.TopicRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTopicNotFound
		}
		return nil, err
	}
	return topic, nil
}

// Create 管理员建话题，名字唯一
func (s *TopicService) Create(req CreateTopicRequest) (*model.Topic, error) {
	if _, err := s.TopicRepo.FindByName(req.Name); err == nil {
		return nil, ErrTopicExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	topic := &model.Topic{
		Name:       req.Name,
		SubTopics:  util.JoinCSV(req.SubTopics),
		Info:       req.Info,
		IsOfficial: req.IsOfficial,
	}
	if err := s.TopicRepo.Create(topic); err != nil {
		return nil, err
	}
	return topic, nil
}
