// Package model 定义数据库模型.
package model

import (
	"time"
)

// User 用户档案. ID 由注册时生成（uuid），是目录条目 OwnerID 的弱引用目标：
// 管理员删除用户不会级联清理其条目，悬挂的 OwnerID 是允许的.
type User struct {
	ID       string `gorm:"primaryKey;size:36"          json:"id"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	// Email 由用户名合成（{username}@{domain}），仅作为内部唯一标识保留.
	Email        string `gorm:"size:320;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:128;not null"    json:"-"`
	IsAdmin      bool   `gorm:"default:false"        json:"is_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 用户档案表名.
func (User) TableName() string {
	return "profiles"
}
