package model

type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"
	RequestSuggested RequestStatus = "SUGGESTED"
)

// TopicRequest 累计"缺少专家数据"的信号；count 达到阈值后晋升为 SUGGESTED。
type TopicRequest struct {
	UUIDBase
	TopicKey    string        `gorm:"size:255;index;not null" json:"topicKey"`
	ExampleCode string        `gorm:"type:text" json:"exampleCode"`
	Count       int           `gorm:"default:1" json:"count"`
	Status      RequestStatus `gorm:"size:10;default:'PENDING'" json:"status"`
}

func (TopicRequest) TableName() string {
	return "topic_requests"
}
