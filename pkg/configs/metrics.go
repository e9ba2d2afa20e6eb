package configs

import "github.com/spf13/viper"

// MetricsConfig 监控指标配置.
type MetricsConfig struct {
	Enabled        bool `mapstructure:"enabled"`         // 是否启用指标采集
	RuntimeMetrics bool `mapstructure:"runtime_metrics"` // 是否采集 Go 运行时/进程指标
	Pprof          bool `mapstructure:"pprof"`           // 是否暴露 pprof 端点
}

const (
	DefaultMetricsEnabled = true
	DefaultRuntimeMetrics = true
	DefaultMetricsPprof   = false
)

func (c *MetricsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("metrics.enabled", DefaultMetricsEnabled)
	v.SetDefault("metrics.runtime_metrics", DefaultRuntimeMetrics)
	v.SetDefault("metrics.pprof", DefaultMetricsPprof)
}
