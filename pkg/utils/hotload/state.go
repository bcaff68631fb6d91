package hotload

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/yeisme/locscope/pkg/utils/fsop"
)

// maxHashSize 超过该大小的文件只比较大小与修改时间
const maxHashSize = 1 << 20

// fileState 用于判断一次写事件是否真的改变了内容
type fileState struct {
	modTime time.Time
	size    int64
	hash    uint64
}

func statFile(path string) (fileState, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return fileState{}, false
	}
	st := fileState{modTime: info.ModTime(), size: info.Size()}
	if info.Size() <= maxHashSize {
		st.hash = hashFile(path)
	}
	return st, true
}

// hashFile 计算内容哈希，读取失败时返回 0
func hashFile(path string) uint64 {
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()
	d := xxhash.New()
	if _, err := io.Copy(d, f); err != nil {
		return 0
	}
	return d.Sum64()
}

// sameContent 优先比较哈希，否则比较大小与修改时间
func (a fileState) sameContent(b fileState) bool {
	if a.hash != 0 && b.hash != 0 {
		return a.hash == b.hash
	}
	return a.size == b.size && a.modTime.Equal(b.modTime)
}

// scan 记录所有被关注文件的初始状态，键为相对路径
func (s *session) scan() (map[string]fileState, error) {
	return s.scanFrom(s.opts.Root)
}

// scanFrom 扫描 root 下被关注的文件，root 本身不做目录过滤
func (s *session) scanFrom(root string) (map[string]fileState, error) {
	state := make(map[string]fileState)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		rel := s.rel(path)
		if d.IsDir() {
			if path != root && s.filter.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if !s.filter.watched(rel) {
			return nil
		}
		if st, ok := statFile(path); ok {
			state[rel] = st
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return state, nil
}

// addTree 把 dir 及其未被忽略的子目录加入 watcher
func (s *session) addTree(dir string) error {
	if dir != s.opts.Root && s.filter.skipDir(s.rel(dir)) {
		return nil
	}
	if err := s.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	subdirs, err := fsop.ListSubdirectories(dir, func(rel string) bool {
		return s.filter.skipDir(s.rel(filepath.Join(dir, filepath.FromSlash(rel))))
	})
	if err != nil {
		return err
	}
	for _, sub := range subdirs {
		if err := s.watcher.Add(sub); err != nil {
			s.opts.logger().Warn().Err(err).Str("dir", sub).Msg("cannot watch directory")
		}
	}
	return nil
}

func (s *session) rel(path string) string {
	r, err := filepath.Rel(s.opts.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}
