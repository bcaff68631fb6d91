package configs

import (
	"github.com/spf13/viper"
)

// AppConfig 应用配置
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Debug   bool   `mapstructure:"debug"`
	Verbose bool   `mapstructure:"verbose"`

	// Quiet 安静模式，禁止所有日志输出
	Quiet bool `mapstructure:"quiet"`

	// Format 默认结果输出格式
	Format  string `mapstructure:"format" jsonschema:"enum=table,enum=json,enum=yaml,enum=toml,enum=markdown"`
	NoColor bool   `mapstructure:"no_color"`

	// Progress 在终端上显示进度条（stderr 不是终端时自动关闭）
	Progress bool `mapstructure:"progress"`
}

func setAppConfigDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "locscope")
	v.SetDefault("app.debug", false)
	v.SetDefault("app.verbose", false)
	v.SetDefault("app.quiet", false)
	v.SetDefault("app.format", "table")
	v.SetDefault("app.no_color", false)
	v.SetDefault("app.progress", true)
}
