package hotload

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// handle 记录一个事件涉及的候选路径
// 内容是否真的变化要等防抖结束、文件写完之后再由 settle 判断；返回是否记录了候选
func (s *session) handle(event fsnotify.Event) bool {
	rel := s.rel(event.Name)
	logger := s.opts.logger()
	logger.Trace().Str("op", event.Op.String()).Str("path", rel).Msg("event")

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if s.filter.skipDir(rel) {
				return false
			}
			if err := s.addTree(event.Name); err != nil {
				logger.Warn().Err(err).Str("dir", rel).Msg("cannot watch new directory")
			}
			// 目录可能在注册前就已写入文件
			fresh, err := s.scanFrom(event.Name)
			if err != nil {
				return false
			}
			for p := range fresh {
				s.pending[p] = struct{}{}
			}
			return len(fresh) > 0
		}
	}

	if !event.Has(fsnotify.Create | fsnotify.Write | fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	if _, tracked := s.state[rel]; tracked || s.filter.watched(rel) {
		s.pending[rel] = struct{}{}
		return true
	}
	if !event.Has(fsnotify.Remove | fsnotify.Rename) {
		return false
	}
	// 被删除或移走的目录
	found := false
	prefix := rel + "/"
	for p := range s.state {
		if strings.HasPrefix(p, prefix) {
			s.pending[p] = struct{}{}
			found = true
		}
	}
	return found
}

// settle 重新检查候选路径，返回内容确实变化（新增、修改或删除）的路径
func (s *session) settle(candidates []string) []string {
	var changed []string
	for _, rel := range candidates {
		if s.update(filepath.Join(s.opts.Root, filepath.FromSlash(rel)), rel) {
			changed = append(changed, rel)
		}
	}
	return changed
}

// update 刷新一个文件的状态，内容没有变化时返回 false
func (s *session) update(path, rel string) bool {
	st, ok := statFile(path)
	old, tracked := s.state[rel]
	switch {
	case !ok || !s.filter.watched(rel):
		delete(s.state, rel)
		return tracked
	case tracked && old.sameContent(st):
		return false
	}
	s.state[rel] = st
	return true
}
