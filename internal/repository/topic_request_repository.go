package repository

import (
	"errors"

	"expertline/internal/model"
	"expertline/internal/util"

	"gorm.io/gorm"
)

type TopicRequestRepository struct {
	DB *gorm.DB
}

func NewTopicRequestRepository(db *gorm.DB) *TopicRequestRepository {
	return &TopicRequestRepository{DB: db}
}

func (r *TopicRequestRepository) FindWithPagination(offset, limit int) ([]model.TopicRequest, int64, error) {
	var requests []model.TopicRequest
	var total int64

	if err := r.DB.Model(&model.TopicRequest{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&requests).Error
	return requests, total, err
}

// Record 记录一次"缺少该话题内容"的信号。同 key 的 PENDING 记录计数 +1，
// 达到阈值晋升 SUGGESTED；没有则新建。事务包住查找和更新，避免并发下
// 重复建行或漏计。
func (r *TopicRequestRepository) Record(topicKey, exampleCode string) (*model.TopicRequest, error) {
	var result model.TopicRequest

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.TopicRequest
		err := tx.Where("topic_key = ? AND status = ?", topicKey, model.RequestPending).
			First(&existing).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			result = model.TopicRequest{
				TopicKey:    topicKey,
				ExampleCode: exampleCode,
				Count:       1,
				Status:      model.RequestPending,
			}
			return tx.Create(&result).Error
		}
		if err != nil {
			return err
		}

		existing.Count++
		if existing.Count >= util.TopicRequestSuggestAt {
			existing.Status = model.RequestSuggested
		}
		result = existing
		return tx.Save(&existing).Error
	})

	return &result, err
}
