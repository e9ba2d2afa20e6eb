// Package storage 聚合持久化资源：数据库、图标对象存储与发布资产托管客户端.
//
// Example:
//
//	ctx := context.Background()
//	mgr, err := storage.Init(ctx)
//	if err != nil {
//	    // 处理错误
//	}
//
//	dbClient := mgr.GetDBClient()
//	s3Client := mgr.GetS3Client()
package storage

import (
	"context"
	"sync"

	"github.com/yeisme/novahub/pkg/configs"
	"github.com/yeisme/novahub/pkg/internal/model"
	dbc "github.com/yeisme/novahub/pkg/internal/storage/db"
	rlc "github.com/yeisme/novahub/pkg/internal/storage/release"
	s3c "github.com/yeisme/novahub/pkg/internal/storage/s3"
	nlog "github.com/yeisme/novahub/pkg/log"
)

// Manager 聚合所有存储资源. 进程启动时构造一次，之后作为只读句柄共享.
type Manager struct {
	DB      *dbc.Client
	S3      *s3c.Client
	Release *rlc.Client
}

var (
	mgr     *Manager
	mgrErr  error
	mgrOnce sync.Once
)

// Init 初始化默认存储，使用全局配置. 重复调用返回首次初始化的结果，
// 首次失败的错误同样被记住，不会被后续调用吞掉.
func Init(ctx context.Context) (*Manager, error) {
	mgrOnce.Do(func() {
		cfg := configs.GetConfig()
		m := &Manager{}

		// DB
		dbi, e := dbc.New(ctx, &cfg.DB, cfg.Metrics.Enabled)
		if e != nil {
			mgrErr = e

			return
		}

		if e := dbi.AutoMigrate(&model.User{}, &model.App{}); e != nil {
			mgrErr = e

			return
		}

		m.DB = dbi

		// S3
		s3i, e := s3c.New(ctx, &cfg.S3)
		if e != nil {
			mgrErr = e

			return
		}

		m.S3 = s3i

		// Release 资产托管（可关闭，关闭时大文件退回对象存储）
		if cfg.Release.Enabled {
			m.Release = rlc.New(&cfg.Release)
		}

		mgr = m

		nlog.Logger().Info().Bool("release_enabled", cfg.Release.Enabled).Msg("storage manager initialized")
	})

	return mgr, mgrErr
}

// GetDBClient 获取 DB 客户端.
func (m *Manager) GetDBClient() *dbc.Client {
	return m.DB
}

// GetS3Client 获取 S3 客户端.
func (m *Manager) GetS3Client() *s3c.Client {
	return m.S3
}

// GetReleaseClient 获取资产托管客户端，未启用时为 nil.
func (m *Manager) GetReleaseClient() *rlc.Client {
	return m.Release
}
