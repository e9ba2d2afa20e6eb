package configs

import "github.com/spf13/viper"

// ReleaseConfig 发布资产托管配置. 大体积应用二进制不落对象存储，
// 而是作为 release 资产上传到托管仓库，换取稳定的公开下载直链.
type ReleaseConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// APIBase 托管服务 API 基地址，例如 https://api.github.com.
	APIBase string `mapstructure:"api_base"`
	// UploadBase 资产上传 API 基地址，例如 https://uploads.github.com.
	UploadBase string `mapstructure:"upload_base"`
	// Token 访问令牌. 启用时必填，没有默认值.
	Token string `mapstructure:"token"`
	// Repository 目标仓库标识，形如 owner/repo. 启用时必填.
	Repository string `mapstructure:"repository"`
	// TimeoutSeconds 单次 API 调用超时（大文件上传按此放大）.
	TimeoutSeconds int `mapstructure:"timeout_seconds" rule:"min=1"`
}

const (
	DefaultReleaseEnabled    = true
	DefaultReleaseAPIBase    = "https://api.github.com"
	DefaultReleaseUploadBase = "https://uploads.github.com"
	DefaultReleaseTimeout    = 300 // 秒，大文件上传
)

// setDefaults 设置发布资产托管配置的默认值. Token 与 Repository 有意没有默认值.
func (c *ReleaseConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("release.enabled", DefaultReleaseEnabled)
	v.SetDefault("release.api_base", DefaultReleaseAPIBase)
	v.SetDefault("release.upload_base", DefaultReleaseUploadBase)
	v.SetDefault("release.timeout_seconds", DefaultReleaseTimeout)
}
