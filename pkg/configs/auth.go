package configs

import (
	"time"

	"github.com/spf13/viper"
)

// AuthConfig 会话签名与 Cookie 配置.
// SessionSecret 没有默认值：缺失时 Validate 直接拒绝启动.
type AuthConfig struct {
	SessionSecret string `mapstructure:"session_secret"`
	Issuer        string `mapstructure:"issuer"`
	CookieName    string `mapstructure:"cookie_name"`
	// SessionTTLHours 会话有效期（小时）.
	SessionTTLHours int `mapstructure:"session_ttl_hours" rule:"min=1"`
	// CookieSecure 为 true 时 Cookie 仅经 HTTPS 传输.
	CookieSecure bool `mapstructure:"cookie_secure"`
	// EmailDomain 用户名映射为内部邮箱所用的域，沿用 hub.com.
	EmailDomain string `mapstructure:"email_domain"`
}

const (
	DefaultAuthIssuer      = "novahub"
	DefaultAuthCookieName  = "novahub_session"
	DefaultSessionTTLHours = 24 * 7
	DefaultCookieSecure    = false
	DefaultEmailDomain     = "hub.com"
)

// SessionTTL 返回会话有效期.
func (c *AuthConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.issuer", DefaultAuthIssuer)
	v.SetDefault("auth.cookie_name", DefaultAuthCookieName)
	v.SetDefault("auth.session_ttl_hours", DefaultSessionTTLHours)
	v.SetDefault("auth.cookie_secure", DefaultCookieSecure)
	v.SetDefault("auth.email_domain", DefaultEmailDomain)
}
