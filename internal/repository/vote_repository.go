package repository

import (
	"expertline/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) FindByPostAndUser(postID, userID string) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	return &vote, err
}
