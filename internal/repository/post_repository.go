package repository

import (
	"expertline/internal/model"
	"strings"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").Preload("Topic").First(&post, "id = ?", id).Error
	return &post, err
}

func (r *PostRepository) FindWithPagination(offset, limit int, topicID string) ([]model.Post, int64, error) {
	var posts []model.Post
	var total int64

	query := r.DB.Model(&model.Post{})
	if topicID != "" {
		query = query.Where("topic_id = ?", topicID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Author").Preload("Topic").
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *PostRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Post{}).Count(&total).Error
	return total, err
}

// keywordConditions 组装优先级检索条件：算法关键词覆盖
// title/description/code/categories，技术关键词只取前 5 个且不查 code。
func (r *PostRepository) keywordConditions(algoKeywords, techKeywords []string) *gorm.DB {
	cond := r.DB.Session(&gorm.Session{NewDB: true})
	var or *gorm.DB

	add := func(query string, arg string) {
		if or == nil {
			or = cond.Where(query, arg)
		} else {
			or = or.Or(query, arg)
		}
	}

	for _, k := range algoKeywords {
		p := "%" + strings.ToLower(k) + "%"
		add("LOWER(title) LIKE ?", p)
		add("LOWER(description) LIKE ?", p)
		add("LOWER(code) LIKE ?", p)
		add("LOWER(categories) LIKE ?", p)
	}

	if len(techKeywords) > 5 {
		techKeywords = techKeywords[:5]
	}
	for _, k := range techKeywords {
		p := "%" + strings.ToLower(k) + "%"
		add("LOWER(title) LIKE ?", p)
		add("LOWER(description) LIKE ?", p)
		add("LOWER(categories) LIKE ?", p)
	}

	return or
}

func (r *PostRepository) CountByKeywords(algoKeywords, techKeywords []string) (int64, error) {
	or := r.keywordConditions(algoKeywords, techKeywords)
	if or == nil {
		return 0, nil
	}

	var total int64
	err := r.DB.Model(&model.Post{}).Where(or).Count(&total).Error
	return total, err
}

// FindByKeywords 返回按 E/O 比和创建时间排序的候选帖子
func (r *PostRepository) FindByKeywords(algoKeywords, techKeywords []string, limit int) ([]model.Post, error) {
	or := r.keywordConditions(algoKeywords, techKeywords)
	if or == nil {
		return nil, nil
	}

	var posts []model.Post
	err := r.DB.Where(or).
		Order("eo_ratio DESC").Order("created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) codePatternConditions(patterns []string) *gorm.DB {
	cond := r.DB.Session(&gorm.Session{NewDB: true})
	var or *gorm.DB
	for _, p := range patterns {
		like := "%" + strings.ToLower(p) + "%"
		if or == nil {
			or = cond.Where("LOWER(code) LIKE ?", like)
		} else {
			or = or.Or("LOWER(code) LIKE ?", like)
		}
	}
	return or
}

func (r *PostRepository) CountByCodePatterns(patterns []string) (int64, error) {
	or := r.codePatternConditions(patterns)
	if or == nil {
		return 0, nil
	}

	var total int64
	err := r.DB.Model(&model.Post{}).Where(or).Count(&total).Error
	return total, err
}

func (r *PostRepository) FindByCodePatterns(patterns []string, limit int) ([]model.Post, error) {
	or := r.codePatternConditions(patterns)
	if or == nil {
		return nil, nil
	}

	var posts []model.Post
	err := r.DB.Where(or).
		Order("eo_ratio DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}
