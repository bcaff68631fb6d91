// Package main 生成配置文件的 JSON Schema 到 docs 目录
package main

import (
	"os"

	"github.com/yeisme/locscope/pkg/utils/schema"
)

//go:generate go run github.com/yeisme/locscope/cmd/schema
func main() {
	if _, err := os.Stat("../../docs"); os.IsNotExist(err) {
		if err := os.Mkdir("../../docs", 0o755); err != nil {
			panic(err)
		}
	}

	configSchemaFile, err := os.Create("../../docs/config_schema.json")
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = configSchemaFile.Close()
	}()

	if err := schema.GenConfigSchema(configSchemaFile); err != nil {
		panic(err)
	}
}
