// Package service 实现目录编排核心：身份解析、上传路由、目录增删改查与授权策略.
package service

import (
	"context"
	"errors"

	ctxPkg "github.com/yeisme/novahub/pkg/context"
	"github.com/yeisme/novahub/pkg/internal/storage/db"
)

var (
	// ErrUnauthenticated 动作要求已登录身份.
	ErrUnauthenticated = errors.New("service: authentication required")
	// ErrForbidden 身份存在但无权操作目标条目（所有者或管理员才可以）.
	ErrForbidden = errors.New("service: owner or admin required")
	// ErrValidation 请求缺少必要的文件或字段.
	ErrValidation = errors.New("service: invalid request")
	// ErrNotFound 目录中不存在该文件键.
	ErrNotFound = errors.New("service: not found")
)

// CatalogService 目录编排服务. 每个请求构造一次，持有进程级只读客户端句柄；
// 服务本身无状态，同名键并发上传在存储层按 last-write-wins 竞争.
type CatalogService struct {
	dbClient *db.Client
	blobs    BlobRouter
}

// NewCatalogService 从请求上下文取存储句柄构造目录服务.
func NewCatalogService(ctx context.Context) *CatalogService {
	return &CatalogService{
		dbClient: ctxPkg.GetDBClient(ctx),
		blobs:    NewBlobRouter(ctxPkg.GetS3Client(ctx), ctxPkg.GetReleaseClient(ctx)),
	}
}
