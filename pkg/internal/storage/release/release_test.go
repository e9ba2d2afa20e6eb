package release

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/yeisme/novahub/pkg/configs"
)

// assetPayload 测试统一上传的资产内容，托管端逐字节校验.
const assetPayload = "binary bytes"

// newTestHost 模拟托管端：创建 release 返回固定 ID，上传资产返回直链.
func newTestHost(t *testing.T, failUpload bool) *Client {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/repos/owner/repo", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)

			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"full_name": "owner/repo"}`))
	})

	mux.HandleFunc("/repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)

			return
		}

		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Errorf("unexpected authorization header: %s", auth)
		}

		body, _ := io.ReadAll(r.Body)

		var req struct {
			TagName string `json:"tag_name"`
		}
		if err := sonic.Unmarshal(body, &req); err != nil || req.TagName == "" {
			http.Error(w, "bad request", http.StatusBadRequest)

			return
		}

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42}`))
	})

	mux.HandleFunc("/repos/owner/repo/releases/42/assets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)

			return
		}

		if failUpload {
			http.Error(w, "storage unavailable", http.StatusBadGateway)

			return
		}

		// 托管端必须收到与上传方发出的完全一致的字节
		payload, _ := io.ReadAll(r.Body)
		if string(payload) != assetPayload {
			http.Error(w, "payload mismatch", http.StatusBadRequest)

			return
		}

		name := r.URL.Query().Get("name")

		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"browser_download_url": "https://assets.test/%s"}`, name)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return New(&configs.ReleaseConfig{
		APIBase:        srv.URL,
		UploadBase:     srv.URL,
		Token:          "test-token",
		Repository:     "owner/repo",
		TimeoutSeconds: 5,
	})
}

// scratchFiles 列出当前遗留的暂存文件.
func scratchFiles(t *testing.T) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "novahub-asset-*"))
	if err != nil {
		t.Fatalf("glob temp dir: %v", err)
	}

	return matches
}

func TestUploadAsset(t *testing.T) {
	client := newTestHost(t, false)

	before := len(scratchFiles(t))

	asset, err := client.UploadAsset(context.Background(), "app-tag-1", "tool.exe", strings.NewReader(assetPayload))
	if err != nil {
		t.Fatalf("upload asset: %v", err)
	}

	if asset.URL != "https://assets.test/tool.exe" {
		t.Errorf("expected direct download url, got %s", asset.URL)
	}

	if asset.Tag != "app-tag-1" {
		t.Errorf("expected tag passthrough, got %s", asset.Tag)
	}

	if after := len(scratchFiles(t)); after != before {
		t.Errorf("scratch file leaked after success: %d -> %d", before, after)
	}
}

func TestUploadAssetFailureCleansScratch(t *testing.T) {
	client := newTestHost(t, true)

	before := len(scratchFiles(t))

	if _, err := client.UploadAsset(context.Background(), "app-tag-2", "tool.exe", strings.NewReader(assetPayload)); err == nil {
		t.Fatal("expected upload failure to propagate")
	}

	if after := len(scratchFiles(t)); after != before {
		t.Errorf("scratch file leaked after failure: %d -> %d", before, after)
	}
}

func TestUploadAssetHostError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "tag already exists"}`, http.StatusUnprocessableEntity)
	}))
	t.Cleanup(srv.Close)

	client := New(&configs.ReleaseConfig{
		APIBase:        srv.URL,
		UploadBase:     srv.URL,
		Token:          "test-token",
		Repository:     "owner/repo",
		TimeoutSeconds: 5,
	})

	_, err := client.UploadAsset(context.Background(), "app-dup", "tool.exe", strings.NewReader("x"))
	if err == nil || !strings.Contains(err.Error(), "422") {
		t.Errorf("expected 422 surfaced in error, got %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	client := newTestHost(t, false)

	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("health check: %v", err)
	}
}
