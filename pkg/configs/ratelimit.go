package configs

import "github.com/spf13/viper"

const (
	DefaultRateLimitEnabled = false
	// 上传是大载荷操作，默认速率按通用浏览流量设置，突发容量覆盖目录刷新
	DefaultRateLimitRPS   = 50.0
	DefaultRateLimitBurst = 100
	DefaultRateLimitKey   = "ip"
)

// RateLimitConfig 速率限制配置.
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps"`   // 每秒允许的请求数
	Burst   int     `mapstructure:"burst"` // 突发容量
	// Key 限流维度：global（进程全局）、ip（按客户端 IP）、header:Header-Name（按请求头）
	Key string `mapstructure:"key"`
}

func (c *RateLimitConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("rate_limit.enabled", DefaultRateLimitEnabled)
	v.SetDefault("rate_limit.rps", DefaultRateLimitRPS)
	v.SetDefault("rate_limit.burst", DefaultRateLimitBurst)
	v.SetDefault("rate_limit.key", DefaultRateLimitKey)
}
