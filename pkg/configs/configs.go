// Package configs 提供应用程序配置管理功能
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，例如 LOCSCOPE_ANALYSIS_MAX_LINES
const EnvPrefix = "LOCSCOPE"

// Config 应用配置结构
type Config struct {
	Version  string         `mapstructure:"version" jsonschema:"title=Version,description=Config file version"`
	Log      LogConfig      `mapstructure:"log" jsonschema:"title=Log,description=Logging settings"`
	App      AppConfig      `mapstructure:"app" jsonschema:"title=App,description=Application settings"`
	Analysis AnalysisConfig `mapstructure:"analysis" jsonschema:"title=Analysis,description=Line classification and folder walking settings"`
	Watch    WatchConfig    `mapstructure:"watch" jsonschema:"title=Watch,description=Watch mode settings"`
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	v.SetDefault("version", "1.0")
	setLogConfigDefaults(v)
	setAppConfigDefaults(v)
	setAnalysisConfigDefaults(v)
	setWatchConfigDefaults(v)
}

// configSearchPaths 配置文件搜索路径，按优先级排列
func configSearchPaths() []string {
	paths := []string{
		".",
		"./configs",
		"$HOME",
		"$HOME/.config/locscope",
	}

	if runtime.GOOS == "windows" {
		paths = append(paths, "$APPDATA/locscope")
	} else {
		paths = append(paths, "/etc/locscope")
	}
	return paths
}

// FindConfigFile 按搜索路径查找第一个存在的配置文件
func FindConfigFile() (string, bool) {
	names := []string{".locscope", "locscope"}
	extensions := []string{"yaml", "yml", "json", "toml"}

	for _, dir := range configSearchPaths() {
		for _, name := range names {
			for _, ext := range extensions {
				file := filepath.Join(dir, name+"."+ext)
				if strings.Contains(file, "$") {
					file = os.ExpandEnv(file)
				}
				if st, err := os.Stat(file); err == nil && !st.IsDir() {
					return file, true
				}
			}
		}
	}
	return "", false
}

// NewViper 创建带默认值与环境变量绑定的 viper 实例
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// LoadConfig 加载配置文件
// configPath 为空时按搜索路径查找，找不到配置文件时只使用默认值与环境变量
func LoadConfig(configPath string) (*Config, *viper.Viper, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := NewViper()
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if file, ok := FindConfigFile(); ok {
		v.SetConfigFile(file)
	}

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, nil, fmt.Errorf("读取配置文件失败: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := config.Analysis.Validate(); err != nil {
		return nil, nil, fmt.Errorf("配置无效: %w", err)
	}

	// 确保日志目录存在
	if config.Log.Mode == "file" || config.Log.Mode == "both" {
		logDir := filepath.Dir(config.Log.FilePath)
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("创建日志目录失败: %w", err)
		}
	}

	return &config, v, nil
}
