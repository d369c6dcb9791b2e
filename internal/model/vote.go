package model

type VoteType string

const (
	VoteEndorse VoteType = "ENDORSE"
	VoteOppose  VoteType = "OPPOSE"
)

// Vote 每个 (post, user) 最多一条记录
type Vote struct {
	UUIDBase
	PostID   string   `gorm:"uniqueIndex:idx_post_user;type:varchar(36);not null" json:"postId"`
	UserID   string   `gorm:"uniqueIndex:idx_post_user;type:varchar(36);not null" json:"userId"`
	VoteType VoteType `gorm:"size:10;not null" json:"voteType"`
}

func (Vote) TableName() string {
	return "votes"
}
