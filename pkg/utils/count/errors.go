package count

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedLanguage 文件扩展名没有注册的语言规则
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrInputTooLarge 文件超过行数或字节上限
	ErrInputTooLarge = errors.New("input too large")
	// ErrSourceUnavailable 无法读取文件内容
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNoSupportedFiles 目录中没有可分析的文件
	ErrNoSupportedFiles = errors.New("no supported files found")
)

// FileError 是单个文件的分析失败，Kind 为上面的哨兵错误之一
type FileError struct {
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Path, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Kind)
}

// Unwrap 同时暴露 Kind 与底层错误，便于 errors.Is 判断两者
func (e *FileError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func fileError(path string, kind, err error) *FileError {
	return &FileError{Path: path, Kind: kind, Err: err}
}
