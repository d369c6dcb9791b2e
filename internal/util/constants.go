package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
)

const (
	MimeImage = "image/"
)

// 对比流程的固定阈值
const (
	// MinExpertMatches 专家模式可用所需的最少匹配帖子数
	MinExpertMatches = 3
	// BroadFallbackMinPosts 库内帖子达到该数量才允许兜底采样
	BroadFallbackMinPosts = 10
	// BroadFallbackCap 兜底采样的上限
	BroadFallbackCap = 5
	// TopicRequestSuggestAt TopicRequest 计数达到该值后晋升 SUGGESTED
	TopicRequestSuggestAt = 20
)
