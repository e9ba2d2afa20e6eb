package storage

import (
	"context"
	"testing"

	"github.com/yeisme/novahub/pkg/configs"
)

// TestInitRemembersFailure 首次初始化失败后，重复调用必须返回同一个错误
// 而不是 (nil, nil).
func TestInitRemembersFailure(t *testing.T) {
	configs.GetConfig().DB.Type = "bogus"

	_, err := Init(context.Background())
	if err == nil {
		t.Fatal("expected first Init to fail with unknown db type")
	}

	_, again := Init(context.Background())
	if again == nil {
		t.Fatal("expected repeated Init to return the remembered error")
	}

	if again.Error() != err.Error() {
		t.Errorf("expected identical error, got %q then %q", err, again)
	}
}
