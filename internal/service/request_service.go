package service

import (
	"expertline/internal/model"
	"expertline/internal/repository"
)

type RequestService struct {
	RequestRepo *repository.TopicRequestRepository
}

func NewRequestService(requestRepo *repository.TopicRequestRepository) *RequestService {
	return &RequestService{RequestRepo: requestRepo}
}

type CreateRequestRequest struct {
	TopicKey    string `json:"topicKey" binding:"required,min=2"`
	ExampleCode string `json:"exampleCode"`
}

func (s *RequestService) List(page, pageSize int) ([]model.TopicRequest, int64, error) {
	offset := (page - 1) * pageSize
	return s.RequestRepo.FindWithPagination(offset, pageSize)
}

// Record 同 key 的 PENDING 请求累加计数，到阈值晋升 SUGGESTED
func (s *RequestService) Record(req CreateRequestRequest) (*model.TopicRequest, error) {
	return s.RequestRepo.Record(req.TopicKey, req.ExampleCode)
}
