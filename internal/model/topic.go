package model

type Topic struct {
	UUIDBase
	Name       string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	SubTopics  string `gorm:"size:500" json:"-"`
	Info       string `gorm:"type:text" json:"info"`
	IsOfficial bool   `gorm:"default:false" json:"isOfficial"`
	NumPosts   int    `gorm:"default:0" json:"numPosts"`
	ViewsCount int    `gorm:"default:0" json:"viewsCount"`
	// 冗余的帖子 ID 列表，逗号分隔
	PostIDs string `gorm:"type:text" json:"-"`
}

func (Topic) TableName() string {
	return "topics"
}
