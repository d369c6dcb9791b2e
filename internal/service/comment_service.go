package service

import (
	"errors"

	"expertline/internal/model"
	"expertline/internal/repository"
	"expertline/internal/util"

	"gorm.io/gorm"
)

type CommentService struct {
	CommentRepo *repository.CommentRepository
	PostRepo    *repository.PostRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, postRepo *repository.PostRepository) *CommentService {
	return &CommentService{CommentRepo: commentRepo, PostRepo: postRepo}
}

type CreateCommentRequest struct {
	Content  string `json:"content" binding:"required,max=1000"`
	ParentID string `json:"parentId"`
}

// Create 回复时父评论必须属于同一帖子
func (s *CommentService) Create(postID, authorID string, req CreateCommentRequest) (*model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}

	var parentID *string
	if req.ParentID != "" {
		if _, err := s.CommentRepo.FindInPost(req.ParentID, postID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrParentNotFound
			}
			return nil, err
		}
		parentID = &req.ParentID
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  req.Content,
		ParentID: parentID,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// List 只返回顶层评论，回复挂在 children 里
func (s *CommentService) List(postID string) ([]model.Comment, error) {
	if _, err := s.PostRepo.FindByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return s.CommentRepo.FindTopLevelByPost(postID)
}
