// Package context 保存一次命令执行期间共享的配置与日志
package context

import (
	"context"

	"github.com/spf13/viper"

	"github.com/yeisme/locscope/pkg/configs"
	"github.com/yeisme/locscope/pkg/utils/log"
)

// GlobalFlags 是根命令上的全局参数
type GlobalFlags struct {
	ConfigPath    string
	Debug         bool
	Verbose       bool
	Quiet         bool
	NoColor       bool
	CPUProfile    string
	Trace         string
	VersionEnable bool
}

// AppContext 携带已加载的配置、viper 实例与日志记录器
type AppContext struct {
	context.Context
	Config *configs.Config
	Viper  *viper.Viper
	Logger log.Logger
}

// InitAppContext 加载配置，用命令行参数覆盖 app 配置并初始化日志
func InitAppContext(ctx context.Context, flags GlobalFlags) (*AppContext, error) {
	config, v, err := configs.LoadConfig(flags.ConfigPath)
	if err != nil {
		return nil, err
	}
	return newAppContext(ctx, config, v, flags), nil
}

// DefaultAppContext 只使用默认配置，供配置文件本身无法加载时的命令使用
func DefaultAppContext(ctx context.Context, flags GlobalFlags) (*AppContext, error) {
	config, err := configs.DefaultConfig()
	if err != nil {
		return nil, err
	}
	return newAppContext(ctx, config, configs.NewViper(), flags), nil
}

func newAppContext(ctx context.Context, config *configs.Config, v *viper.Viper, flags GlobalFlags) *AppContext {
	if ctx == nil {
		ctx = context.Background()
	}
	if flags.Debug {
		config.App.Debug = true
	}
	if flags.Verbose {
		config.App.Verbose = true
	}
	if flags.Quiet {
		config.App.Quiet = true
	}
	if flags.NoColor {
		config.App.NoColor = true
	}

	logger := log.InitLogger(ctx, &config.Log, &config.App)
	return &AppContext{
		Context: ctx,
		Config:  config,
		Viper:   v,
		Logger:  logger,
	}
}

// Color 报告输出是否使用颜色
func (c *AppContext) Color() bool {
	return c.Config == nil || !c.Config.App.NoColor
}
