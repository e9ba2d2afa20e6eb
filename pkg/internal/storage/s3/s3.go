// Package s3 处理图标对象存储操作（MinIO/S3 兼容）.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	minio "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/yeisme/novahub/pkg/configs"
	nlog "github.com/yeisme/novahub/pkg/log"
)

// Client 包装 MinIO 客户端.
type Client struct {
	*minio.Client

	cfg configs.S3Config
}

// New 初始化 MinIO 客户端，若 bucket 不存在则尝试创建.
func New(ctx context.Context, cfg *configs.S3Config) (*Client, error) {
	endpoint := cfg.Endpoint
	// 允许用户传完整 schema endpoint（http:// 或 https://）
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		endpoint = u.Host
		if u.Scheme == "https" {
			cfg.UseSSL = true
		}
	}

	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	cli.SetAppInfo("novahub", configs.AppVersion)

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %s: %w", cfg.Bucket, err)
	}

	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket %s: %w", cfg.Bucket, err)
		}

		nlog.Logger().Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	nlog.Logger().Info().Str("endpoint", cfg.Endpoint).Str("bucket", cfg.Bucket).Msg("s3 connected")

	return &Client{Client: cli, cfg: *cfg}, nil
}

// PutObject 覆盖写入对象（同 key 重复上传即覆盖）并返回对象 key.
func (c *Client) PutObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	opts := minio.PutObjectOptions{}
	if contentType != "" {
		opts.ContentType = contentType
	}

	if _, err := c.Client.PutObject(ctx, c.cfg.Bucket, objectKey, reader, size, opts); err != nil {
		return "", fmt.Errorf("put object %s: %w", objectKey, err)
	}

	return objectKey, nil
}

// ObjectURL 返回对象的访问 URL：公开读桶直接拼直链，否则生成预签名 GET URL.
func (c *Client) ObjectURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if c.cfg.PublicRead {
		return c.cfg.PublicObjectURL(objectKey), nil
	}

	u, err := c.PresignedGetObject(ctx, c.cfg.Bucket, objectKey, expiry, nil)
	if err != nil {
		return "", fmt.Errorf("presign get for %s: %w", objectKey, err)
	}

	return u.String(), nil
}

// RemoveObject 删除对象. 对不存在的 key 不报错.
func (c *Client) RemoveObject(ctx context.Context, objectKey string) error {
	if err := c.Client.RemoveObject(ctx, c.cfg.Bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", objectKey, err)
	}

	return nil
}

// HealthCheck 简单的健康检查，通过列出桶来验证连接.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.ListBuckets(ctx)
	return err
}

// Bucket 返回配置的桶名.
func (c *Client) Bucket() string {
	return c.cfg.Bucket
}
