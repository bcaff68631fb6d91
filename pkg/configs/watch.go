package configs

import "github.com/spf13/viper"

// WatchConfig 监听模式配置
type WatchConfig struct {
	Debounce       int      `mapstructure:"debounce" jsonschema:"minimum=0,description=Debounce window in milliseconds"`
	IgnorePatterns []string `mapstructure:"ignore_patterns" jsonschema:"description=Doublestar globs of paths whose changes never trigger a rerun"`
	// ClearScreen 每次重新分析前清屏
	ClearScreen bool `mapstructure:"clear_screen"`
}

func setWatchConfigDefaults(v *viper.Viper) {
	v.SetDefault("watch.debounce", 300)
	v.SetDefault("watch.ignore_patterns", []string{
		"**/*.tmp",
		"**/*.swp",
		"**/*.log",
		"**/.git/**",
		"**/node_modules/**",
	})
	v.SetDefault("watch.clear_screen", false)
}
