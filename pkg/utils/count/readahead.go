package count

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type source struct {
	data []byte
	err  error
}

// readAhead 并发读取文件内容，但按输入顺序交付
// 已读取但未消费的文件数不超过窗口大小，避免大目录占满内存
type readAhead struct {
	slots  []chan source
	window chan struct{}
	done   chan struct{}
}

func startReadAhead(ctx context.Context, n, conc int, read func(i int) ([]byte, error)) *readAhead {
	ra := &readAhead{
		slots:  make([]chan source, n),
		window: make(chan struct{}, 2*conc),
		done:   make(chan struct{}),
	}
	for i := range ra.slots {
		ra.slots[i] = make(chan source, 1)
	}

	g := new(errgroup.Group)
	g.SetLimit(conc)
	go func() {
		defer close(ra.done)
		defer func() { _ = g.Wait() }()
		for i := range n {
			select {
			case ra.window <- struct{}{}:
			case <-ctx.Done():
				return
			}
			g.Go(func() error {
				data, err := read(i)
				ra.slots[i] <- source{data: data, err: err}
				return nil
			})
		}
	}()
	return ra
}

// next 等待第 i 个文件的内容，必须按 0..n-1 的顺序调用
func (ra *readAhead) next(ctx context.Context, i int) (source, error) {
	select {
	case s := <-ra.slots[i]:
		<-ra.window
		return s, nil
	case <-ctx.Done():
		return source{}, ctx.Err()
	}
}

// wait 等待所有读取协程退出
func (ra *readAhead) wait() {
	<-ra.done
}
