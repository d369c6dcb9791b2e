package service

import (
	"errors"
	"strings"

	"expertline/internal/model"
	"expertline/internal/util"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteResult 投票后的最新计数和当前用户的投票状态
type VoteResult struct {
	Endorse     int     `json:"endorse"`
	Oppose      int     `json:"oppose"`
	EoRatio     float64 `json:"eoRatio"`
	EndorseRate float64 `json:"endorseRate"`
	UserVote    *string `json:"userVote"`
	Message     string  `json:"message"`
}

type VoteService struct {
	DB *gorm.DB
}

func NewVoteService(db *gorm.DB) *VoteService {
	return &VoteService{DB: db}
}

// lockPost 带行锁读取帖子。并发投票必须先抢到行锁再算计数,
// 否则两个事务会基于同一份旧快照互相覆盖。SQLite 不支持行锁,其驱动会忽略该子句。
func lockPost(tx *gorm.DB, postID string) (*model.Post, error) {
	var post model.Post
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&post, "id = ?", postID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Vote 同方向重复投票报错，反方向自动改票。
// 投票记录、计数、比值在一个事务里一起落库。
func (s *VoteService) Vote(postID, userID string, voteType model.VoteType) (*VoteResult, error) {
	var result *VoteResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}

		var existing model.Vote
		err = tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
		switch {
		case err == nil:
			if existing.VoteType == voteType {
				if voteType == model.VoteEndorse {
					return util.ErrAlreadyEndorsed
				}
				return util.ErrAlreadyOpposed
			}
			// 改票:旧方向减一,新方向加一
			existing.VoteType = voteType
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			if voteType == model.VoteEndorse {
				post.Endorse++
				post.Oppose--
			} else {
				post.Oppose++
				post.Endorse--
			}
			result = &VoteResult{Message: changeMessage(voteType)}

		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := model.Vote{PostID: postID, UserID: userID, VoteType: voteType}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			if voteType == model.VoteEndorse {
				post.Endorse++
			} else {
				post.Oppose++
			}
			result = &VoteResult{Message: newVoteMessage(voteType)}

		default:
			return err
		}

		post.RecalcRatios()
		if err := tx.Model(&model.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
			"endorse":      post.Endorse,
			"oppose":       post.Oppose,
			"eo_ratio":     post.EoRatio,
			"endorse_rate": post.EndorseRate,
		}).Error; err != nil {
			return err
		}

		vote := strings.ToLower(string(voteType))
		result.Endorse = post.Endorse
		result.Oppose = post.Oppose
		result.EoRatio = post.EoRatio
		result.EndorseRate = post.EndorseRate
		result.UserVote = &vote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Unvote 撤销投票,没投过报 400
func (s *VoteService) Unvote(postID, userID string) (*VoteResult, error) {
	var result *VoteResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		post, err := lockPost(tx, postID)
		if err != nil {
			return err
		}

		var existing model.Vote
		if err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrNoVote
			}
			return err
		}

		if err := tx.Delete(&existing).Error; err != nil {
			return err
		}

		if existing.VoteType == model.VoteEndorse {
			post.Endorse--
		} else {
			post.Oppose--
		}
		post.RecalcRatios()

		if err := tx.Model(&model.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
			"endorse":      post.Endorse,
			"oppose":       post.Oppose,
			"eo_ratio":     post.EoRatio,
			"endorse_rate": post.EndorseRate,
		}).Error; err != nil {
			return err
		}

		result = &VoteResult{
			Endorse:     post.Endorse,
			Oppose:      post.Oppose,
			EoRatio:     post.EoRatio,
			EndorseRate: post.EndorseRate,
			UserVote:    nil,
			Message:     "Vote removed successfully",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Status 返回当前用户在帖子上的投票方向,没投过为 nil
func (s *VoteService) Status(postID, userID string) (*string, error) {
	var vote model.Vote
	err := s.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	v := strings.ToLower(string(vote.VoteType))
	return &v, nil
}

func newVoteMessage(voteType model.VoteType) string {
	if voteType == model.VoteEndorse {
		return "Post endorsed successfully"
	}
	return "Post opposed successfully"
}

func changeMessage(voteType model.VoteType) string {
	if voteType == model.VoteEndorse {
		return "Vote changed from oppose to endorse"
	}
	return "Vote changed from endorse to oppose"
}
