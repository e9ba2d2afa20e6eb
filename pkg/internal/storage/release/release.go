// Package release 封装发布资产托管服务（GitHub Releases 风格 REST API）.
// 每次上传创建一个唯一 tag 的 release 容器，把二进制作为资产挂上去，
// 换取稳定的公开下载直链. tag 复用在服务端是冲突，唯一性是硬性要求.
package release

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/yeisme/novahub/pkg/configs"
	nlog "github.com/yeisme/novahub/pkg/log"
)

// Client 资产托管 API 客户端.
type Client struct {
	apiBase    string
	uploadBase string
	token      string
	repository string
	httpClient *http.Client
}

// Asset 上传完成的资产，URL 为稳定公开直链.
type Asset struct {
	Tag string
	URL string
}

type createReleaseRequest struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	Body    string `json:"body"`
}

type createReleaseResponse struct {
	ID int64 `json:"id"`
}

type uploadAssetResponse struct {
	BrowserDownloadURL string `json:"browser_download_url"`
}

// New 构造资产托管客户端.
func New(cfg *configs.ReleaseConfig) *Client {
	return &Client{
		apiBase:    cfg.APIBase,
		uploadBase: cfg.UploadBase,
		token:      cfg.Token,
		repository: cfg.Repository,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// UploadAsset 把载荷作为指定 tag 的 release 资产上传，返回公开下载直链.
// 托管端要求按已知长度传输，载荷先落到临时文件再上传；
// 无论传输成功与否，临时文件都会被删除.
func (c *Client) UploadAsset(ctx context.Context, tag, name string, payload io.Reader) (*Asset, error) {
	scratch, err := os.CreateTemp("", "novahub-asset-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}

	defer func() {
		_ = scratch.Close()
		_ = os.Remove(scratch.Name())
	}()

	size, err := io.Copy(scratch, payload)
	if err != nil {
		return nil, fmt.Errorf("stage payload: %w", err)
	}

	if _, err := scratch.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind scratch file: %w", err)
	}

	releaseID, err := c.createRelease(ctx, tag, name)
	if err != nil {
		return nil, err
	}

	url, err := c.uploadAsset(ctx, releaseID, name, scratch, size)
	if err != nil {
		return nil, err
	}

	nlog.Logger().Info().Str("tag", tag).Str("asset", name).Int64("size", size).Msg("release asset uploaded")

	return &Asset{Tag: tag, URL: url}, nil
}

// createRelease 创建唯一 tag 的 release 容器，返回其 ID.
func (c *Client) createRelease(ctx context.Context, tag, name string) (int64, error) {
	body, err := sonic.Marshal(createReleaseRequest{
		TagName: tag,
		Name:    name,
		Body:    "Uploaded via NovaHub",
	})
	if err != nil {
		return 0, fmt.Errorf("marshal create release request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/releases", c.apiBase, c.repository)

	respBody, err := c.do(ctx, http.MethodPost, url, "application/json", bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return 0, fmt.Errorf("create release %s: %w", tag, err)
	}

	var resp createReleaseResponse
	if err := sonic.Unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("decode create release response: %w", err)
	}

	return resp.ID, nil
}

// uploadAsset 把资产内容挂到 release 下，返回 browser_download_url.
func (c *Client) uploadAsset(ctx context.Context, releaseID int64, name string, payload io.Reader, size int64) (string, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/%d/assets?name=%s", c.uploadBase, c.repository, releaseID, name)

	respBody, err := c.do(ctx, http.MethodPost, url, "application/octet-stream", payload, size)
	if err != nil {
		return "", fmt.Errorf("upload asset %s: %w", name, err)
	}

	var resp uploadAssetResponse
	if err := sonic.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("decode upload asset response: %w", err)
	}

	if resp.BrowserDownloadURL == "" {
		return "", fmt.Errorf("upload asset %s: host returned no download url", name)
	}

	return resp.BrowserDownloadURL, nil
}

// do 执行一次 API 调用并返回响应体. 非 2xx 状态视为错误.
func (c *Client) do(ctx context.Context, method, url, contentType string, body io.Reader, size int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = size

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("host returned %d: %s", resp.StatusCode, string(respBody))
	}

	return respBody, nil
}

// HealthCheck 验证仓库可达.
func (c *Client) HealthCheck(ctx context.Context) error {
	url := fmt.Sprintf("%s/repos/%s", c.apiBase, c.repository)

	_, err := c.do(ctx, http.MethodGet, url, "", nil, 0)

	return err
}
