package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yeisme/novahub/pkg/internal/model"
	"github.com/yeisme/novahub/pkg/internal/types"
	nlog "github.com/yeisme/novahub/pkg/log"
)

// List 返回目录条目，按创建时间倒序. viewer 存在时为每个条目推导 CanDelete
// 展示标记. 读路径软失败：后端出错记日志并返回空列表，不向上传播.
func (s *CatalogService) List(ctx context.Context, viewer *model.User) []types.CatalogEntry {
	var apps []model.App

	if err := s.dbClient.WithContext(ctx).Order("created_at DESC").Find(&apps).Error; err != nil {
		nlog.Logger().Error().Err(err).Msg("list catalog failed, degrading to empty")

		return []types.CatalogEntry{}
	}

	entries := make([]types.CatalogEntry, 0, len(apps))
	for _, app := range apps {
		entry := types.CatalogEntry{App: app}
		if viewer != nil {
			entry.CanDelete = viewer.IsAdmin || app.OwnerID == viewer.ID
		}

		entries = append(entries, entry)
	}

	return entries
}

// ListUsers 返回全部用户档案，仅供管理员视图. 读路径软失败.
func (s *CatalogService) ListUsers(ctx context.Context, viewer *model.User) []types.UserView {
	if viewer == nil || !viewer.IsAdmin {
		return nil
	}

	var users []model.User

	if err := s.dbClient.WithContext(ctx).Order("created_at ASC").Find(&users).Error; err != nil {
		nlog.Logger().Error().Err(err).Msg("list users failed, degrading to empty")

		return nil
	}

	views := make([]types.UserView, 0, len(users))
	for _, u := range users {
		views = append(views, types.UserView{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin})
	}

	return views
}

// Delete 按文件键删除目录条目. 写路径授权：条目所有者或管理员才能删除
// （展示用的 can_delete 标记与此处的强制检查口径一致）.
// 幂等：删除不存在的键不是错误.
func (s *CatalogService) Delete(ctx context.Context, actor *model.User, filename string) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	var app model.App

	err := s.dbClient.WithContext(ctx).Where("file = ?", filename).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("lookup %s for delete: %w", filename, err)
	}

	if !actor.IsAdmin && app.OwnerID != actor.ID {
		return ErrForbidden
	}

	if err := s.dbClient.WithContext(ctx).Where("file = ?", filename).Delete(&model.App{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", filename, err)
	}

	nlog.Logger().Info().Str("file", filename).Str("actor", actor.Username).Msg("catalog entry deleted")

	return nil
}

// DownloadURL 解析文件键对应的跳转目标. 键不存在与后端失败对调用方
// 不作区分，一律映射为 ErrNotFound（下载路由渲染 404）.
func (s *CatalogService) DownloadURL(ctx context.Context, filename string) (string, error) {
	var app model.App

	if err := s.dbClient.WithContext(ctx).Where("file = ?", filename).First(&app).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			nlog.Logger().Warn().Err(err).Str("file", filename).Msg("download lookup failed")
		}

		return "", ErrNotFound
	}

	url, err := s.blobs.ResolveURL(ctx, app.StoragePath, app.External)
	if err != nil {
		nlog.Logger().Warn().Err(err).Str("file", filename).Msg("resolve download url failed")

		return "", ErrNotFound
	}

	return url, nil
}

// ChangeUsername 用户更新自己的用户名，同时刷新其条目上冗余的所有者展示名.
// 唯一性由存储层的唯一索引保证，这里不做预检查.
func (s *CatalogService) ChangeUsername(ctx context.Context, actor *model.User, newUsername string) error {
	if actor == nil {
		return ErrUnauthenticated
	}

	if newUsername == "" {
		return fmt.Errorf("%w: new username required", ErrValidation)
	}

	if err := s.dbClient.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", actor.ID).
		Update("username", newUsername).Error; err != nil {
		return fmt.Errorf("change username: %w", err)
	}

	if err := s.dbClient.WithContext(ctx).Model(&model.App{}).
		Where("owner_id = ?", actor.ID).
		Update("owner", newUsername).Error; err != nil {
		return fmt.Errorf("refresh catalog owner name: %w", err)
	}

	return nil
}

// AdminDeleteUser 管理员按用户名硬删除用户档案，不可逆；该用户的目录条目
// 不做级联清理（OwnerID 悬挂是接受的）. 非管理员调用是静默 no-op：
// 不报错、不产生任何状态变更，仅落一条日志.
func (s *CatalogService) AdminDeleteUser(ctx context.Context, actor *model.User, targetUsername string) error {
	if actor == nil || !actor.IsAdmin {
		nlog.Logger().Warn().Str("target", targetUsername).Msg("admin delete_user denied, ignoring")

		return nil
	}

	if err := s.dbClient.WithContext(ctx).Where("username = ?", targetUsername).Delete(&model.User{}).Error; err != nil {
		return fmt.Errorf("admin delete user %s: %w", targetUsername, err)
	}

	nlog.Logger().Info().Str("target", targetUsername).Str("actor", actor.Username).Msg("user deleted by admin")

	return nil
}

// AdminRename 管理员按用户名改名. 非管理员调用同样是静默 no-op.
func (s *CatalogService) AdminRename(ctx context.Context, actor *model.User, targetUsername, newUsername string) error {
	if actor == nil || !actor.IsAdmin {
		nlog.Logger().Warn().Str("target", targetUsername).Msg("admin change_username denied, ignoring")

		return nil
	}

	if targetUsername == "" || newUsername == "" {
		return fmt.Errorf("%w: target and new username required", ErrValidation)
	}

	if err := s.dbClient.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", targetUsername).
		Update("username", newUsername).Error; err != nil {
		return fmt.Errorf("admin rename %s: %w", targetUsername, err)
	}

	if err := s.dbClient.WithContext(ctx).Model(&model.App{}).
		Where("owner = ?", targetUsername).
		Update("owner", newUsername).Error; err != nil {
		return fmt.Errorf("refresh catalog owner name: %w", err)
	}

	return nil
}
