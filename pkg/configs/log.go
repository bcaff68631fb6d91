package configs

import "github.com/spf13/viper"

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别
	Level string `mapstructure:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=fatal,enum=panic"`

	// JSON 是否使用 JSON 格式输出
	JSON bool `mapstructure:"json"`

	// Mode 输出模式，file 与 both 会写入 FilePath
	Mode       string `mapstructure:"mode" jsonschema:"enum=console,enum=file,enum=both"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size" jsonschema:"minimum=1"`    // MB
	MaxBackups int    `mapstructure:"max_backups" jsonschema:"minimum=0"` // 保留的备份文件数量
	MaxAge     int    `mapstructure:"max_age" jsonschema:"minimum=0"`     // 文件保留天数
}

func setLogConfigDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.json", false)
	v.SetDefault("log.mode", "console")
	v.SetDefault("log.file_path", ".locscope/locscope.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
}
