package repository

import (
	"expertline/internal/model"

	"gorm.io/gorm"
)

type TopicRepository struct {
	DB *gorm.DB
}

func NewTopicRepository(db *gorm.DB) *TopicRepository {
	return &TopicRepository{DB: db}
}

func (r *TopicRepository) Create(topic *model.Topic) error {
	return r.DB.Create(topic).Error
}

func (r *TopicRepository) FindByID(id string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.First(&topic, "id = ?", id).Error
	return &topic, err
}

func (r *TopicRepository) FindByName(name string) (*model.Topic, error) {
	var topic model.Topic
	err := r.DB.Where("name = ?", name).First(&topic).Error
	return &topic, err
}

func (r *TopicRepository) FindWithPagination(offset, limit int) ([]model.Topic, int64, error) {
	var topics []model.Topic
	var total int64

	if err := r.DB.Model(&model.Topic{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&topics).Error
	return topics, total, err
}

// AttachPost 帖子挂到话题后维护冗余计数和帖子 ID 列表
func (r *TopicRepository) AttachPost(topicID, postID string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var topic model.Topic
		if err := tx.First(&topic, "id = ?", topicID).Error; err != nil {
			return err
		}

		if topic.PostIDs == "" {
			topic.PostIDs = postID
		} else {
			topic.PostIDs = topic.PostIDs + "," + postID
		}

		return tx.Model(&model.Topic{}).Where("id = ?", topicID).Updates(map[string]interface{}{
			"num_posts": gorm.Expr("num_posts + 1"),
			"post_ids":  topic.PostIDs,
		}).Error
	})
}

func (r *TopicRepository) IncrementViews(topicID string) error {
	return r.DB.Model(&model.Topic{}).
		Where("id = ?", topicID).
		Update("views_count", gorm.Expr("views_count + 1")).
		Error
}
