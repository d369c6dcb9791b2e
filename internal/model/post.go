package model

// Post 代码帖子。Categories/SubTopics 以逗号分隔存储。
type Post struct {
	UUIDBase
	Title       string  `gorm:"size:255;not null" json:"title"`
	Code        string  `gorm:"type:text;not null" json:"code"`
	Description string  `gorm:"type:text" json:"description"`
	Categories  string  `gorm:"size:255" json:"-"`
	TopicID     *string `gorm:"index;type:varchar(36)" json:"topicId"`
	Topic       *Topic  `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	SubTopics   string  `gorm:"size:255" json:"-"`
	AuthorID    string  `gorm:"index;type:varchar(36)" json:"authorId"`
	Author      *User   `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	// 冗余存一份作者用户名，帖子列表不用联表
	Username    string    `gorm:"size:50" json:"username"`
	Endorse     int       `gorm:"default:0" json:"endorse"`
	Oppose      int       `gorm:"default:0" json:"oppose"`
	EoRatio     float64   `gorm:"column:eo_ratio;default:0" json:"eoRatio"`
	EndorseRate float64   `gorm:"default:0" json:"endorseRate"`
	IsBaseline  bool      `gorm:"default:false" json:"isBaseline"`
	Comments    []Comment `gorm:"foreignKey:PostID" json:"comments,omitempty"`
}

func (Post) TableName() string {
	return "posts"
}

// RecalcRatios 在 endorse/oppose 变化后必须立即调用。
// endorseRate = endorse/(endorse+oppose)，无票时为 0；
// eoRatio = endorse/oppose，oppose 为 0 时取 endorse 本身。
func (p *Post) RecalcRatios() {
	total := p.Endorse + p.Oppose
	if total > 0 {
		p.EndorseRate = float64(p.Endorse) / float64(total)
	} else {
		p.EndorseRate = 0
	}
	if p.Oppose > 0 {
		p.EoRatio = float64(p.Endorse) / float64(p.Oppose)
	} else {
		p.EoRatio = float64(p.Endorse)
	}
}
