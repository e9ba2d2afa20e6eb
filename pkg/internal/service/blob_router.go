package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/yeisme/novahub/pkg/internal/storage/release"
	"github.com/yeisme/novahub/pkg/internal/storage/s3"
)

// iconURLExpiry 非公开桶下图标预签名 URL 的有效期.
const iconURLExpiry = 7 * 24 * time.Hour

// BlobRouter 决定上传载荷的物理去向并返回稳定的检索定位符.
// 小图标进对象存储（同路径覆盖写），大应用二进制进发布资产托管（外部直链）.
type BlobRouter interface {
	// StoreIcon 把图标写到所有者命名空间下的固定路径，返回可公开访问的 URL.
	StoreIcon(ctx context.Context, ownerID, name string, payload io.Reader, size int64, contentType string) (string, error)
	// StoreBinary 存储应用二进制，返回定位符. external 为 true 时定位符是
	// 外部直链，跳转下载无需再签名.
	StoreBinary(ctx context.Context, ownerID, filename string, payload io.Reader, size int64) (locator string, external bool, err error)
	// ResolveURL 把定位符转换为可跳转的下载 URL：外部直链原样返回，
	// 对象存储内部 key 换成限时签名 URL.
	ResolveURL(ctx context.Context, locator string, external bool) (string, error)
}

// downloadURLExpiry 内部对象的签名下载 URL 有效期.
const downloadURLExpiry = time.Hour

// blobRouter 生产实现：图标走 MinIO，二进制优先走资产托管，
// 托管未启用时退回对象存储.
type blobRouter struct {
	s3Client      *s3.Client
	releaseClient *release.Client
}

// NewBlobRouter 构造存储路由. releaseClient 可以为 nil.
func NewBlobRouter(s3Client *s3.Client, releaseClient *release.Client) BlobRouter {
	return &blobRouter{
		s3Client:      s3Client,
		releaseClient: releaseClient,
	}
}

func (r *blobRouter) StoreIcon(ctx context.Context, ownerID, name string, payload io.Reader, size int64, contentType string) (string, error) {
	objectKey := fmt.Sprintf("logos/%s/%s", ownerID, name)

	if _, err := r.s3Client.PutObject(ctx, objectKey, payload, size, contentType); err != nil {
		return "", err
	}

	return r.s3Client.ObjectURL(ctx, objectKey, iconURLExpiry)
}

func (r *blobRouter) StoreBinary(ctx context.Context, ownerID, filename string, payload io.Reader, size int64) (string, bool, error) {
	if r.releaseClient != nil {
		// 每次上传一个全新 tag：托管端把 tag 复用视为冲突
		tag := "app-" + uuid.NewString()

		asset, err := r.releaseClient.UploadAsset(ctx, tag, filename, payload)
		if err != nil {
			return "", false, fmt.Errorf("store binary via release host: %w", err)
		}

		return asset.URL, true, nil
	}

	objectKey := fmt.Sprintf("files/%s/%s", ownerID, filename)

	if _, err := r.s3Client.PutObject(ctx, objectKey, payload, size, "application/octet-stream"); err != nil {
		return "", false, fmt.Errorf("store binary via object storage: %w", err)
	}

	return objectKey, false, nil
}

func (r *blobRouter) ResolveURL(ctx context.Context, locator string, external bool) (string, error) {
	if external {
		return locator, nil
	}

	return r.s3Client.ObjectURL(ctx, locator, downloadURLExpiry)
}
