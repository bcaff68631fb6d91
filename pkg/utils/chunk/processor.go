// Package chunk 按固定大小的批次顺序处理行序列，批次之间让出调度并报告进度
package chunk

import (
	"context"
	"iter"
	"runtime"
)

// DefaultBatchSize 默认批次大小
const DefaultBatchSize = 1000

// Processor 分批驱动逐行处理函数
// perLine 永远不会被并发调用，输出顺序与输入一致
type Processor struct {
	BatchSize int
	// Yield 在相邻批次之间调用（最后一批之后不调用），返回错误即终止处理
	Yield func(ctx context.Context) error
}

// New 创建处理器，batchSize <= 0 时使用 DefaultBatchSize
func New(batchSize int) *Processor {
	return &Processor{BatchSize: batchSize}
}

// Batch 是一个已处理完成的批次
type Batch[T any] struct {
	Index    int
	Total    int
	Start    int
	Results  []T
	Progress float64
}

func (p *Processor) batchSize() int {
	if p == nil || p.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return p.BatchSize
}

func (p *Processor) yield(ctx context.Context) error {
	if p != nil && p.Yield != nil {
		return p.Yield(ctx)
	}
	runtime.Gosched()
	return ctx.Err()
}

// Batches 惰性地逐批处理，宿主可以在两批之间穿插自己的工作
// 取消只在批次之间生效，出错时产出一次 (零值, err) 后结束
func Batches[T any](ctx context.Context, p *Processor, lines []string, perLine func(string) T) iter.Seq2[Batch[T], error] {
	return func(yield func(Batch[T], error) bool) {
		size := p.batchSize()
		total := (len(lines) + size - 1) / size
		for i := 0; i < total; i++ {
			if i > 0 {
				if err := p.yield(ctx); err != nil {
					yield(Batch[T]{}, err)
					return
				}
			}
			start := i * size
			end := min(start+size, len(lines))
			out := make([]T, 0, end-start)
			for _, line := range lines[start:end] {
				out = append(out, perLine(line))
			}
			b := Batch[T]{
				Index:    i,
				Total:    total,
				Start:    start,
				Results:  out,
				Progress: 100 * float64(i+1) / float64(total),
			}
			if !yield(b, nil) {
				return
			}
		}
	}
}

// Process 处理全部行并返回与输入等长的结果
// 每批结束后以 100*已完成批次/总批次 调用 onProgress（可为 nil），共 ceil(N/B) 次
func Process[T any](ctx context.Context, p *Processor, lines []string, perLine func(string) T, onProgress func(float64)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	results := make([]T, 0, len(lines))
	for b, err := range Batches(ctx, p, lines, perLine) {
		if err != nil {
			return nil, err
		}
		results = append(results, b.Results...)
		if onProgress != nil {
			onProgress(b.Progress)
		}
	}
	return results, nil
}
