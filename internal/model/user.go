package model

import "time"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

// swagger:model User
type User struct {
	UUIDBase
	Email    string   `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Username string   `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Name     string   `gorm:"size:100" json:"name"`
	Image    string   `gorm:"size:255" json:"image"`
	Bio      string   `gorm:"size:500" json:"bio"`
	Role     UserRole `gorm:"size:10;default:'USER'" json:"role"`
	// 密码为空表示仅通过 OAuth 登录的账号
	Password      string     `gorm:"size:100" json:"-"`
	GoogleID      string     `gorm:"size:100;index" json:"-"`
	EmailVerified *time.Time `json:"emailVerified"`
	LastLogin     time.Time  `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
