// Package log 初始化全局 zerolog 日志记录器
// 控制台日志写入 stderr，stdout 只留给分析结果
package log

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yeisme/locscope/pkg/configs"
)

// Logger 全局日志记录器类型
type Logger = *zerolog.Logger

// InitLogger 按配置创建日志记录器，并设置为 zerolog 全局记录器
func InitLogger(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig) Logger {
	logger := New(ctx, config, appConfig, os.Stderr)
	zerolog.SetGlobalLevel(logger.GetLevel())
	log.Logger = logger
	return &logger
}

// New 创建日志记录器，console 输出写入 console
// 级别优先级：quiet > debug > verbose > config.Level
func New(ctx context.Context, config *configs.LogConfig, appConfig *configs.AppConfig, console io.Writer) zerolog.Logger {
	if appConfig.Quiet {
		return zerolog.New(io.Discard).Level(zerolog.Disabled)
	}

	level := parseLogLevel(config.Level)
	switch {
	case appConfig.Debug:
		level = zerolog.DebugLevel
	case appConfig.Verbose:
		level = zerolog.InfoLevel
	}

	var writers []io.Writer
	switch strings.ToLower(config.Mode) {
	case "file":
		writers = append(writers, createFileWriter(config, console))
	case "both":
		writers = append(writers, createConsoleWriter(config.JSON, appConfig.NoColor, console), createFileWriter(config, console))
	default:
		writers = append(writers, createConsoleWriter(config.JSON, appConfig.NoColor, console))
	}

	output := writers[0]
	if len(writers) > 1 {
		output = zerolog.MultiLevelWriter(writers...)
	}

	c := zerolog.New(output).Level(level).With().Timestamp()
	if appConfig.Debug {
		c = c.Caller().Str("app", appConfig.Name)
	}
	return c.Ctx(ctx).Logger()
}

// createConsoleWriter 创建控制台输出写入器
func createConsoleWriter(useJSON, noColor bool, out io.Writer) io.Writer {
	if useJSON {
		return out
	}
	return zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    noColor,
		TimeFormat: "2006-01-02 15:04:05",
	}
}

// createFileWriter 创建带轮转的文件写入器，目录无法创建时退回 fallback
func createFileWriter(config *configs.LogConfig, fallback io.Writer) io.Writer {
	if err := os.MkdirAll(filepath.Dir(config.FilePath), 0o755); err != nil {
		return fallback
	}
	return &lumberjack.Logger{
		Filename:   config.FilePath,
		MaxSize:    config.MaxSize,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAge,
		Compress:   true,
	}
}

// parseLogLevel 解析日志级别，未知级别按 info 处理
func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}
