// Package schema 生成配置文件的 JSON Schema，并用它校验配置文件
package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	invjs "github.com/invopop/jsonschema"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/yeisme/locscope/pkg/configs"
)

const schemaURL = "https://github.com/yeisme/locscope/config.schema.json"

// ValidationError 汇总所有不符合 schema 的位置
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	switch len(e.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + e.Errors[0]
	default:
		return "validation failed: " + strings.Join(e.Errors, "; ")
	}
}

// Reflect 从 configs.Config 生成 schema，键名取 mapstructure 标签，不允许未知键
func Reflect() *invjs.Schema {
	reflector := &invjs.Reflector{
		FieldNameTag:               "mapstructure",
		RequiredFromJSONSchemaTags: true,
		AllowAdditionalProperties:  false,
	}
	s := reflector.Reflect(&configs.Config{})
	s.ID = schemaURL
	return s
}

// GenConfigSchema 把配置 schema 以缩进 JSON 写入 out
func GenConfigSchema(out io.Writer) error {
	b, err := json.MarshalIndent(Reflect(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(b))
	return err
}

var compiled = sync.OnceValues(func() (*jsonschema.Schema, error) {
	b, err := json.Marshal(Reflect())
	if err != nil {
		return nil, err
	}
	return jsonschema.CompileString(schemaURL, string(b))
})

// ValidateConfig 校验已解析的配置数据（map/slice/标量组成的树）
func ValidateConfig(data any) error {
	s, err := compiled()
	if err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}
	doc, err := normalize(data)
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		return ValidationError{Errors: leafMessages(verr)}
	}
	return nil
}

// ValidateConfigFile 按扩展名解析 yaml/yml/json/toml 配置文件并校验
func ValidateConfigFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	var data any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &data)
	case ".json":
		err = json.Unmarshal(content, &data)
	case ".toml":
		err = toml.Unmarshal(content, &data)
	default:
		return fmt.Errorf("unsupported config file type %q", ext)
	}
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return ValidateConfig(data)
}

// normalize 经 JSON 往返，把 yaml/toml 解析出的整数等类型统一成校验器接受的形式
func normalize(data any) (any, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("config is not representable as JSON: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// leafMessages 收集最具体的错误，附带实例位置
func leafMessages(e *jsonschema.ValidationError) []string {
	if len(e.Causes) == 0 {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		return []string{fmt.Sprintf("%s: %s", loc, e.Message)}
	}
	var out []string
	for _, c := range e.Causes {
		out = append(out, leafMessages(c)...)
	}
	return out
}
