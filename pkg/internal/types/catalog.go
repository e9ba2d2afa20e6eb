// Package types 定义对外请求与响应的数据结构.
package types

import "github.com/yeisme/novahub/pkg/internal/model"

// CatalogEntry 目录条目视图. CanDelete 是按查看者推导的展示标记：
// 管理员或条目所有者为 true；匿名查看时恒为 false.
type CatalogEntry struct {
	model.App

	CanDelete bool `json:"can_delete"`
}

// CatalogPage 首页数据：目录列表，管理员额外附带用户列表.
type CatalogPage struct {
	User  *UserView      `json:"user,omitempty"`
	Items []CatalogEntry `json:"items"`
	Users []UserView     `json:"users,omitempty"`
}

// UserView 用户档案视图（不含口令散列）.
type UserView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

// UploadResult 上传结果，URL 为检索定位符.
type UploadResult struct {
	File string `json:"file"`
	Name string `json:"name"`
	Type string `json:"type"`
	URL  string `json:"url"`
}
