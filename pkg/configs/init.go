package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// DefaultConfigPath 返回当前目录下给定格式的默认配置文件名
func DefaultConfigPath(format OutputFormat) string {
	return ".locscope." + string(format)
}

// DefaultConfig 只根据默认值构建配置，不读取配置文件与环境变量
func DefaultConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to build default config: %w", err)
	}
	return &config, nil
}

// CreateDefaultConfig 将默认配置写入 path，文件已存在时返回错误
func CreateDefaultConfig(path string, format OutputFormat) error {
	if format == FormatText {
		return fmt.Errorf("text format is not supported for config files")
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	config, err := DefaultConfig()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	return OutputData(config.Settings(), format, f, false)
}
