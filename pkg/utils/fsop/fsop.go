// Package fsop provides file system operations.
package fsop

import (
	"io/fs"
	"path/filepath"
)

// SkipFunc 返回 true 时跳过该目录及其整个子树
// rel 是相对遍历根目录、以 '/' 分隔的路径
type SkipFunc func(rel string) bool

// ListSubdirectories 递归列出 root 下未被跳过的子目录（不含 root 本身），按遍历顺序返回
// root 无法读取时返回错误，无法读取的子目录被忽略
func ListSubdirectories(root string, skip SkipFunc) ([]string, error) {
	var subdirs []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() || path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if skip != nil && skip(filepath.ToSlash(rel)) {
			return filepath.SkipDir
		}
		subdirs = append(subdirs, path)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return subdirs, nil
}
