package configs

import (
	"errors"
	"fmt"

	"github.com/yeisme/novahub/pkg/rule"
)

var (
	// ErrMissingSessionSecret 未配置会话签名密钥.
	ErrMissingSessionSecret = errors.New("configs: auth.session_secret is required (set NOVAHUB_AUTH_SESSION_SECRET)")
	// ErrMissingReleaseToken 启用资产托管但未配置访问令牌.
	ErrMissingReleaseToken = errors.New("configs: release.token is required when release storage is enabled")
	// ErrMissingReleaseRepository 启用资产托管但未配置目标仓库.
	ErrMissingReleaseRepository = errors.New("configs: release.repository is required when release storage is enabled")
)

// Validate 校验配置. 密钥与凭证是硬性要求：源代码中不存在任何回退默认值，
// 配置缺失时进程拒绝启动而不是带着空密钥运行.
func (c *AppConfig) Validate() error {
	if c.Auth.SessionSecret == "" {
		return ErrMissingSessionSecret
	}

	if c.Release.Enabled {
		if c.Release.Token == "" {
			return ErrMissingReleaseToken
		}

		if c.Release.Repository == "" {
			return ErrMissingReleaseRepository
		}
	}

	if err := rule.ValidateStruct(c); err != nil {
		return fmt.Errorf("configs: invalid configuration: %w", err)
	}

	return nil
}
