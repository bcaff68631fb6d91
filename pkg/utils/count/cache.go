package count

import (
	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yeisme/locscope/pkg/models"
)

// DefaultCacheSize 默认缓存条目数
const DefaultCacheSize = 1024

// StatsCache 以 (语言, 内容) 的 xxhash 为键缓存文件统计
// 监视模式下重复分析未变化的文件时可直接复用结果，并发安全
type StatsCache struct {
	entries *lru.Cache[uint64, models.FileStats]
}

// NewStatsCache 创建缓存，size <= 0 时使用 DefaultCacheSize
func NewStatsCache(size int) (*StatsCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[uint64, models.FileStats](size)
	if err != nil {
		return nil, err
	}
	return &StatsCache{entries: c}, nil
}

func cacheKey(language, text string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(language)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(text)
	return d.Sum64()
}

// Get 返回缓存的统计
func (c *StatsCache) Get(language, text string) (models.FileStats, bool) {
	if c == nil {
		return models.FileStats{}, false
	}
	return c.entries.Get(cacheKey(language, text))
}

// Put 写入统计
func (c *StatsCache) Put(language, text string, s models.FileStats) {
	if c == nil {
		return
	}
	c.entries.Add(cacheKey(language, text), s)
}

// Len 返回当前条目数
func (c *StatsCache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
