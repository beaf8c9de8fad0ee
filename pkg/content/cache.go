package content

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Cached 内容源的加载/缓存装饰器
//
// 成功的结果被缓存在内存中；并发的相同请求只触发一次底层获取。
// 失败的结果不缓存，也不自动重试：由调用方决定是否重新加载。
// Invalidate 之后完成的旧获取不会写回缓存。
type Cached struct {
	src Source
	log *zap.Logger

	group   singleflight.Group
	loading atomic.Int32

	mu             sync.RWMutex
	gen            uint64
	hero           *Hero
	heroLoaded     bool
	sections       []Section
	sectionsLoaded bool
	assets         map[string][]byte
}

// NewCached 包装内容源
func NewCached(src Source, log *zap.Logger) *Cached {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{
		src:    src,
		log:    log,
		assets: make(map[string][]byte),
	}
}

// Loading 是否有底层获取正在进行
func (c *Cached) Loading() bool {
	return c.loading.Load() > 0
}

// Invalidate 清空所有缓存（用于手动重新加载）
func (c *Cached) Invalidate() {
	c.mu.Lock()
	c.gen++
	c.hero, c.heroLoaded = nil, false
	c.sections, c.sectionsLoaded = nil, false
	c.assets = make(map[string][]byte)
	c.mu.Unlock()
	c.log.Debug("Cache invalidated")
}

// fetch 以当前代数为键合并并发获取，返回值与获取开始时的代数
func (c *Cached) fetch(key string, fn func() (any, error)) (any, uint64, bool, error) {
	c.mu.RLock()
	gen := c.gen
	c.mu.RUnlock()

	v, err, shared := c.group.Do(fmt.Sprintf("%d:%s", gen, key), func() (any, error) {
		return c.track(fn)
	})
	return v, gen, shared, err
}

// store 在代数未变化时写入缓存
func (c *Cached) store(gen uint64, key string, write func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug("Stale fetch result dropped", zap.String("key", key))
		return
	}
	write()
}

// Hero 实现 Source
func (c *Cached) Hero(ctx context.Context) (*Hero, error) {
	c.mu.RLock()
	h, ok := c.hero, c.heroLoaded
	c.mu.RUnlock()
	if ok {
		return h, nil
	}

	v, gen, shared, err := c.fetch("hero", func() (any, error) { return c.src.Hero(ctx) })
	if err != nil {
		return nil, err
	}
	h = v.(*Hero)
	c.store(gen, "hero", func() { c.hero, c.heroLoaded = h, true })
	c.log.Debug("Hero loaded", zap.Bool("shared", shared))
	return h, nil
}

// Sections 实现 Source
func (c *Cached) Sections(ctx context.Context) ([]Section, error) {
	c.mu.RLock()
	s, ok := c.sections, c.sectionsLoaded
	c.mu.RUnlock()
	if ok {
		return s, nil
	}

	v, gen, shared, err := c.fetch("sections", func() (any, error) { return c.src.Sections(ctx) })
	if err != nil {
		return nil, err
	}
	s = v.([]Section)
	c.store(gen, "sections", func() { c.sections, c.sectionsLoaded = s, true })
	c.log.Debug("Sections loaded", zap.Int("count", len(s)), zap.Bool("shared", shared))
	return s, nil
}

// Asset 实现 Source
func (c *Cached) Asset(ctx context.Context, ref string) ([]byte, error) {
	c.mu.RLock()
	data, ok := c.assets[ref]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}

	v, gen, _, err := c.fetch("asset:"+ref, func() (any, error) { return c.src.Asset(ctx, ref) })
	if err != nil {
		return nil, err
	}
	data = v.([]byte)
	c.store(gen, "asset:"+ref, func() { c.assets[ref] = data })
	return data, nil
}

// track 在底层获取期间维护 loading 计数
func (c *Cached) track(fn func() (any, error)) (any, error) {
	c.loading.Add(1)
	defer c.loading.Add(-1)
	return fn()
}
