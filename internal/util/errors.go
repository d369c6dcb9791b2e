package util

import "errors"

var (
	ErrEmailRegistered  = errors.New("该邮箱已被注册")
	ErrUsernameTaken    = errors.New("该用户名已被占用")
	ErrPostNotFound     = errors.New("post not found")
	ErrTopicNotFound    = errors.New("topic not found")
	ErrParentNotFound   = errors.New("parent comment not found")
	ErrAlreadyEndorsed  = errors.New("you have already endorsed this post")
	ErrAlreadyOpposed   = errors.New("you have already opposed this post")
	ErrNoVote           = errors.New("you haven't voted on this post")
	ErrPermissionDenied = errors.New("permission denied")
)
