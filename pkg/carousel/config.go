package carousel

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// 默认配置值
const (
	DefaultVisible        = 6
	DefaultStep           = 3
	DefaultDuration       = 450 * time.Millisecond
	DefaultEasing         = "ease"
	DefaultGap            = 8.0
	DefaultResizeDebounce = 150 * time.Millisecond

	// seedPages 初始物化序列额外预留的步数：visible + step*seedPages
	seedPages = 10
	// lowWaterSteps 默认低水位：剩余未消费尾部小于 step*lowWaterSteps 时扩容
	lowWaterSteps = 3
	// growthCycles 默认扩容批次：cardCount*growthCycles
	growthCycles = 2
)

// Config 轮播引擎配置
//
// 一个引擎实例在整个生命周期内使用固定的配置。
type Config struct {
	Visible  int           // 同时可见的卡片数
	Step     int           // 每次 next/previous 移动的卡片数
	Infinite bool          // 是否无限循环
	Duration time.Duration // 过渡动画时长，0 表示无动画
	Easing   string        // 缓动函数名（CSS 命名：ease、linear、ease-in ...）
	Label    string        // 轨道标签，用于日志和错误信息

	Gap            float64       // 卡片间距（像素或单元格）
	ResizeDebounce time.Duration // resize 去抖静默窗口

	// GrowthBatch 每次扩容追加的卡片数，0 表示 cardCount*2
	GrowthBatch int
	// LowWater 剩余尾部低于此值时扩容，0 表示 step*3
	LowWater int
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		Visible:        DefaultVisible,
		Step:           DefaultStep,
		Infinite:       true,
		Duration:       DefaultDuration,
		Easing:         DefaultEasing,
		Gap:            DefaultGap,
		ResizeDebounce: DefaultResizeDebounce,
	}
}

// normalize 补全零值字段并校验
func (c Config) normalize(cardCount int) (Config, error) {
	if c.Visible == 0 {
		c.Visible = DefaultVisible
	}
	if c.Step == 0 {
		c.Step = DefaultStep
	}
	if c.Easing == "" {
		c.Easing = DefaultEasing
	}
	if c.ResizeDebounce == 0 {
		c.ResizeDebounce = DefaultResizeDebounce
	}
	if c.GrowthBatch == 0 {
		c.GrowthBatch = cardCount * growthCycles
	}
	if c.LowWater == 0 {
		c.LowWater = c.Step * lowWaterSteps
	}

	switch {
	case c.Visible < 0:
		return c, fmt.Errorf("%w: visible must be positive, got %d", ErrInvalidConfig, c.Visible)
	case c.Step < 0:
		return c, fmt.Errorf("%w: step must be positive, got %d", ErrInvalidConfig, c.Step)
	case c.Duration < 0:
		return c, fmt.Errorf("%w: negative duration %s", ErrInvalidConfig, c.Duration)
	case c.Gap < 0:
		return c, fmt.Errorf("%w: negative gap %v", ErrInvalidConfig, c.Gap)
	case c.ResizeDebounce < 0:
		return c, fmt.Errorf("%w: negative resize debounce %s", ErrInvalidConfig, c.ResizeDebounce)
	case c.GrowthBatch < 0 || c.LowWater < 0:
		return c, fmt.Errorf("%w: negative growth batch or low-water mark", ErrInvalidConfig)
	}
	return c, nil
}

// options 构造选项
type options struct {
	log      *zap.Logger
	onUpdate func()
}

// Option 引擎构造选项
type Option func(*options)

// WithLogger 设置日志记录器，默认不输出
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// WithUpdateHook 每次分页/按钮状态重新计算后调用 fn
//
// 渲染层可以在这里刷新轨道外部的控件（圆点、箭头）。
func WithUpdateHook(fn func()) Option {
	return func(o *options) {
		o.onUpdate = fn
	}
}
