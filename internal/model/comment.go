package model

// Comment 支持一层回复；回复的父评论必须属于同一帖子。
type Comment struct {
	UUIDBase
	PostID   string    `gorm:"index;type:varchar(36);not null" json:"postId"`
	AuthorID string    `gorm:"index;type:varchar(36)" json:"authorId"`
	Author   *User     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Content  string    `gorm:"size:1000;not null" json:"content"`
	ParentID *string   `gorm:"index;type:varchar(36)" json:"parentId"`
	Children []Comment `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
