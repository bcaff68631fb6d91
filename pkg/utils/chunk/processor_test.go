package chunk

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func makeLines(n int) []string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line-%d", i)
	}
	return lines
}

func Test_Process_ProgressCalls(t *testing.T) {
	cases := []struct{ n, batch, calls int }{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{2500, 0, 3},
		{999, 100, 10},
	}
	for _, c := range cases {
		var got []float64
		out, err := Process(context.Background(), New(c.batch), makeLines(c.n), strings.ToUpper, func(p float64) {
			got = append(got, p)
		})
		require.NoError(t, err)
		if len(out) != c.n {
			t.Fatalf("n=%d batch=%d => %d results", c.n, c.batch, len(out))
		}
		if len(got) != c.calls {
			t.Fatalf("n=%d batch=%d => %d progress calls want %d", c.n, c.batch, len(got), c.calls)
		}
		if c.calls > 0 {
			assert.Equal(t, 100.0, got[len(got)-1])
			for i := 1; i < len(got); i++ {
				assert.Greater(t, got[i], got[i-1])
			}
		}
	}
}

func Test_Process_PreservesOrderAndState(t *testing.T) {
	lines := makeLines(37)
	// 跨批次共享的状态必须按顺序推进
	seen := 0
	out, err := Process(context.Background(), New(5), lines, func(s string) int {
		seen++
		return seen
	}, nil)
	require.NoError(t, err)
	for i, v := range out {
		if v != i+1 {
			t.Fatalf("result %d = %d", i, v)
		}
	}
}

func Test_Process_YieldBetweenBatches(t *testing.T) {
	yields := 0
	p := &Processor{BatchSize: 4, Yield: func(ctx context.Context) error {
		yields++
		return nil
	}}
	_, err := Process(context.Background(), p, makeLines(10), func(s string) string { return s }, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, yields)
}

func Test_Process_Cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	processed := 0
	_, err := Process(ctx, New(2), makeLines(10), func(s string) int {
		processed++
		if processed == 3 {
			cancel()
		}
		return processed
	}, nil)
	assert.True(t, errors.Is(err, context.Canceled))
	// 取消只在批次边界生效：第二批处理完后停止
	assert.Equal(t, 4, processed)

	_, err = Process(ctx, New(2), makeLines(3), func(s string) int { return 0 }, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_Batches_EarlyStop(t *testing.T) {
	calls := 0
	for b, err := range Batches(context.Background(), New(3), makeLines(9), func(s string) string {
		calls++
		return s
	}) {
		require.NoError(t, err)
		assert.Equal(t, 3, b.Total)
		break
	}
	assert.Equal(t, 3, calls)
}

func Test_Process_HostGoroutine(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	progress := make(chan float64, 16)
	done := make(chan error, 1)
	go func() {
		_, err := Process(ctx, New(100), makeLines(1000), strings.TrimSpace, func(p float64) {
			progress <- p
		})
		close(progress)
		done <- err
	}()

	var last float64
	for p := range progress {
		last = p
	}
	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, 100.0, last)
}
