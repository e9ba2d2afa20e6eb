package model

import (
	"time"
)

// App 目录条目. File（净化后的原始文件名）是自然键：同名上传按 file 冲突列
// 整行覆盖旧条目（last-write-wins），不保留历史版本.
type App struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// File 净化后的文件名，目录内唯一.
	File string `gorm:"size:512;uniqueIndex;not null" json:"file"`
	// Name 展示名，取原始文件名去掉最后一个扩展名.
	Name string `gorm:"size:512" json:"name"`
	// Owner 冗余的所有者用户名，仅用于展示.
	Owner string `gorm:"size:64;index" json:"owner"`
	// OwnerID 指向 profiles.id 的弱引用，不设外键级联.
	OwnerID string `gorm:"size:36;index" json:"owner_id"`
	// StoragePath 检索定位符：对象存储内部 key，或资产托管返回的外部直链 URL.
	StoragePath string `gorm:"size:2048" json:"storage_path"`
	// External 标记 StoragePath 是否为外部直链（跳转时无需再签名）.
	External bool `gorm:"default:false" json:"external"`
	// Type/Color/IconClass 由扩展名分类器导出，落库避免每次渲染重算.
	Type      string `gorm:"size:32"  json:"type"`
	Color     string `gorm:"size:64"  json:"color"`
	IconClass string `gorm:"size:64"  json:"icon_class"`
	// PreviewIcon 可选的预览图 URL.
	PreviewIcon string `gorm:"size:2048" json:"preview_icon"`
	Version     string `gorm:"size:32;default:1.0.0" json:"version"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName 目录条目表名.
func (App) TableName() string {
	return "apps"
}
