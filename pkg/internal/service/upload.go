package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeisme/novahub/pkg/internal/model"
	"github.com/yeisme/novahub/pkg/internal/types"
	nlog "github.com/yeisme/novahub/pkg/log"
)

const defaultAppVersion = "1.0.0"

// Upload 发布一个应用二进制到目录：净化文件名、导出展示名与分类、
// 路由载荷到物理存储，最后按 file 键 upsert 目录条目.
// 同名键的旧条目被整行覆盖（last-write-wins），不保留历史；
// 并发同键上传不做进程内串行化，以最后完成的 upsert 为准.
func (s *CatalogService) Upload(ctx context.Context, actor *model.User, filename string, payload io.Reader, size int64) (*types.UploadResult, error) {
	if actor == nil {
		return nil, ErrUnauthenticated
	}

	if payload == nil || size <= 0 {
		return nil, fmt.Errorf("%w: file payload required", ErrValidation)
	}

	cleanName := SanitizeFilename(filename)
	if cleanName == "" {
		return nil, fmt.Errorf("%w: unusable filename", ErrValidation)
	}

	displayName := DisplayName(filename)
	kind := ClassifyFilename(cleanName)

	locator, external, err := s.blobs.StoreBinary(ctx, actor.ID, cleanName, payload, size)
	if err != nil {
		return nil, err
	}

	app := model.App{
		File:        cleanName,
		Name:        displayName,
		Owner:       actor.Username,
		OwnerID:     actor.ID,
		StoragePath: locator,
		External:    external,
		Type:        kind.Label,
		Color:       kind.Color,
		IconClass:   kind.IconClass,
		Version:     defaultAppVersion,
	}

	// upsert-on-conflict(file)：已有条目的元数据被新上传完全取代，
	// preview_icon 保留（换图标是独立操作）
	err = s.dbClient.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "file"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "owner", "owner_id", "storage_path", "external",
			"type", "color", "icon_class", "version", "updated_at",
		}),
	}).Create(&app).Error
	if err != nil {
		return nil, fmt.Errorf("upsert catalog entry %s: %w", cleanName, err)
	}

	nlog.Logger().Info().
		Str("file", cleanName).
		Str("owner", actor.Username).
		Str("type", kind.Label).
		Bool("external", external).
		Msg("catalog entry published")

	return &types.UploadResult{
		File: cleanName,
		Name: displayName,
		Type: kind.Label,
		URL:  locator,
	}, nil
}

// UpdateIcon 更新目录条目的预览图. 图标存到所有者命名空间下的固定路径
// （同路径覆盖写），公开 URL 写回条目. 写路径授权与删除一致：
// 条目所有者或管理员.
func (s *CatalogService) UpdateIcon(ctx context.Context, actor *model.User, filename, imageName string, payload io.Reader, size int64) (string, error) {
	if actor == nil {
		return "", ErrUnauthenticated
	}

	if payload == nil || size <= 0 {
		return "", fmt.Errorf("%w: image payload required", ErrValidation)
	}

	var app model.App

	err := s.dbClient.WithContext(ctx).Where("file = ?", filename).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}

	if err != nil {
		return "", fmt.Errorf("lookup %s for icon update: %w", filename, err)
	}

	if !actor.IsAdmin && app.OwnerID != actor.ID {
		return "", ErrForbidden
	}

	ext := iconExt(imageName)
	iconName := filename + ext

	iconURL, err := s.blobs.StoreIcon(ctx, actor.ID, iconName, payload, size, iconContentType(ext))
	if err != nil {
		return "", fmt.Errorf("store icon for %s: %w", filename, err)
	}

	if err := s.dbClient.WithContext(ctx).Model(&model.App{}).
		Where("file = ?", filename).
		Update("preview_icon", iconURL).Error; err != nil {
		return "", fmt.Errorf("update preview icon for %s: %w", filename, err)
	}

	return iconURL, nil
}

// iconExt 取图片文件的扩展名（带点），没有则为空.
func iconExt(imageName string) string {
	idx := strings.LastIndex(imageName, ".")
	if idx < 0 || idx == len(imageName)-1 {
		return ""
	}

	return imageName[idx:]
}

// iconContentType 常见图片扩展名到 MIME 的映射，未知时交给存储端探测.
func iconContentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	default:
		return ""
	}
}
