package configs

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yeisme/locscope/pkg/style"
)

// OutputFormat 配置输出格式
type OutputFormat string

const (
	// FormatYAML YAML 格式
	FormatYAML OutputFormat = "yaml"
	// FormatJSON JSON 格式
	FormatJSON OutputFormat = "json"
	// FormatTOML TOML 格式
	FormatTOML OutputFormat = "toml"
	// FormatText 纯文本格式
	FormatText OutputFormat = "text"
)

// ValidFormats 返回所有有效的输出格式
func ValidFormats() []string {
	return []string{string(FormatYAML), string(FormatJSON), string(FormatTOML), string(FormatText)}
}

// ParseOutputFormat 解析输出格式字符串
func ParseOutputFormat(format string) (OutputFormat, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "text", "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format '%s', supported formats: %s", format, strings.Join(ValidFormats(), ", "))
	}
}

// GetOutputFormatFromFlags 从命令行标志获取输出格式，--format 优先于 --yaml/--json/--toml/--text
func GetOutputFormatFromFlags(cmd *cobra.Command) (OutputFormat, error) {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return ParseOutputFormat(f)
	}
	for _, f := range ValidFormats() {
		if on, _ := cmd.Flags().GetBool(f); on {
			return OutputFormat(f), nil
		}
	}
	return FormatYAML, nil
}

// OutputData 根据指定格式输出数据
func OutputData(data any, format OutputFormat, out io.Writer, color bool) error {
	switch format {
	case FormatYAML, FormatJSON, FormatTOML:
		return style.Print(out, string(format), data, color)
	case FormatText:
		_, err := fmt.Fprintf(out, "%+v\n", data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// GetConfigSection 获取配置段
// showAll 为 true 时返回合并默认值后的结构体，否则返回 viper 中的原始数据
func GetConfigSection(v *viper.Viper, section string, showAll bool) (any, error) {
	lower := strings.ToLower(section)
	if !showAll {
		if lower == "" {
			return v.AllSettings(), nil
		}
		if v.IsSet(lower) {
			return v.Get(lower), nil
		}
		return nil, fmt.Errorf("unknown or unset configuration section %s", section)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	all := config.Settings()
	if lower == "" {
		return all, nil
	}
	if sec, ok := all[lower]; ok {
		return sec, nil
	}
	return nil, fmt.Errorf("unknown configuration section: %s", section)
}

// Settings 把配置转换为以 mapstructure 标签为键的嵌套 map，与配置文件的键一致
func (c Config) Settings() map[string]any {
	m, _ := settingsValue(reflect.ValueOf(c)).(map[string]any)
	return m
}

func settingsValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		out := make(map[string]any, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
			if !f.IsExported() || name == "-" {
				continue
			}
			if name == "" {
				name = strings.ToLower(f.Name)
			}
			out[name] = settingsValue(v.Field(i))
		}
		return out
	case reflect.Slice:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = settingsValue(v.Index(i))
		}
		return out
	default:
		return v.Interface()
	}
}
