// Package hotload 监听目录中源码文件的变化，并在防抖后触发回调
package hotload

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yeisme/locscope/pkg/lang"
	"github.com/yeisme/locscope/pkg/utils/gitignore"
)

// DefaultDebounce 默认防抖时长
const DefaultDebounce = 300 * time.Millisecond

// Func 在一批变化稳定后被调用，changed 为相对根目录、'/' 分隔且已排序的路径
// 回调在事件循环中同步执行，执行期间的事件会在回调返回后继续处理
type Func func(ctx context.Context, changed []string)

// Options 监听选项
type Options struct {
	Root     string
	Debounce time.Duration
	// IgnorePatterns doublestar 模式，匹配相对根目录的路径
	IgnorePatterns []string
	// GitIgnore 非 nil 时按其规则忽略
	GitIgnore *gitignore.GitIgnore
	// Registry 只有能解析出语言的文件才会触发回调，nil 使用内置表
	Registry *lang.Registry
	Logger   *zerolog.Logger
	// OnReady 在所有目录注册完成后调用一次
	OnReady func()
}

func (o Options) debounce() time.Duration {
	if o.Debounce > 0 {
		return o.Debounce
	}
	return DefaultDebounce
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}

func (o Options) registry() *lang.Registry {
	if o.Registry != nil {
		return o.Registry
	}
	return lang.Default()
}

// Watch 阻塞监听 opts.Root，直到 ctx 被取消
// ctx 取消时返回 nil，watcher 创建或根目录注册失败时返回错误
func Watch(ctx context.Context, opts Options, hook Func) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			opts.logger().Error().Err(cerr).Msg("close watcher")
		}
	}()

	s := &session{
		opts:    opts,
		watcher: w,
		filter:  newFilter(opts),
		pending: make(map[string]struct{}),
	}
	if s.state, err = s.scan(); err != nil {
		return err
	}
	if err := s.addTree(opts.Root); err != nil {
		return err
	}

	logger := opts.logger()
	logger.Info().Str("root", opts.Root).Dur("debounce", opts.debounce()).Int("files", len(s.state)).Msg("watching")
	if opts.OnReady != nil {
		opts.OnReady()
	}
	return s.loop(ctx, hook)
}

// session 保存一次监听的运行时状态，只在事件循环所在的 goroutine 中访问
type session struct {
	opts    Options
	watcher *fsnotify.Watcher
	filter  *filter
	state   map[string]fileState
	pending map[string]struct{}
}

func (s *session) loop(ctx context.Context, hook Func) error {
	logger := s.opts.logger()
	timer := time.NewTimer(s.opts.debounce())
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			if s.handle(event) {
				timer.Reset(s.opts.debounce())
			}
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn().Msg("watch event queue overflowed, some changes may be missed")
				continue
			}
			logger.Error().Err(err).Msg("watcher error")
		case <-timer.C:
			if len(s.pending) == 0 {
				continue
			}
			candidates := make([]string, 0, len(s.pending))
			for p := range s.pending {
				candidates = append(candidates, p)
			}
			slices.Sort(candidates)
			clear(s.pending)
			changed := s.settle(candidates)
			if len(changed) == 0 {
				continue
			}
			logger.Debug().Strs("changed", changed).Msg("change settled")
			hook(ctx, changed)
		}
	}
}
