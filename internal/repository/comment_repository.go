package repository

import (
	"expertline/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

// FindTopLevelByPost 只取一级评论，回复通过 Children 预加载
func (r *CommentRepository) FindTopLevelByPost(postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Where("post_id = ? AND parent_id IS NULL", postID).
		Preload("Author").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Children.Author").
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) FindInPost(commentID, postID string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Where("id = ? AND post_id = ?", commentID, postID).First(&comment).Error
	return &comment, err
}

func (r *CommentRepository) CountByPost(postID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.Comment{}).Where("post_id = ?", postID).Count(&total).Error
	return total, err
}
