package popover

import (
	"time"

	"go.uber.org/zap"
)

// 默认延时
const (
	DefaultOpenDelay  = 150 * time.Millisecond
	DefaultCloseDelay = 250 * time.Millisecond
)

// Scheduler 延时调度能力（clock.Scheduler 满足此接口）
type Scheduler interface {
	After(d time.Duration, fn func()) (cancel func())
}

// Controller 悬浮弹层的开合控制器
//
// 指针进入后延时打开，离开后延时关闭；关闭等待期间重新进入会取消关闭，
// 这样指针可以从锚点移动到弹层上而不闪烁。键盘激活使用 Toggle，立即生效。
//
// Thread Safety Note:
// Controller 不是线程安全的，必须与其调度器在同一事件循环上使用。
type Controller struct {
	name       string
	sched      Scheduler
	log        *zap.Logger
	openDelay  time.Duration
	closeDelay time.Duration

	open     bool
	cancel   func()
	onChange func(open bool)
}

// Option Controller 构造选项
type Option func(*Controller)

// WithDelays 设置打开/关闭延时（负值视为 0）
func WithDelays(open, close time.Duration) Option {
	return func(c *Controller) {
		c.openDelay = max(open, 0)
		c.closeDelay = max(close, 0)
	}
}

// WithLogger 设置日志记录器
func WithLogger(log *zap.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// OnChange 设置开合状态变化回调
func OnChange(fn func(open bool)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// NewController 创建控制器
//
// 参数:
//   - name: 弹层名称（仅用于日志）
//   - sched: 延时调度器
func NewController(name string, sched Scheduler, opts ...Option) *Controller {
	c := &Controller{
		name:       name,
		sched:      sched,
		log:        zap.NewNop(),
		openDelay:  DefaultOpenDelay,
		closeDelay: DefaultCloseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsOpen 弹层是否打开
func (c *Controller) IsOpen() bool {
	return c.open
}

// Pending 是否有等待中的开合动作
func (c *Controller) Pending() bool {
	return c.cancel != nil
}

// Enter 指针进入锚点或弹层
func (c *Controller) Enter() {
	c.stop()
	if c.open {
		return
	}
	c.schedule(c.openDelay, true)
}

// Leave 指针离开锚点或弹层
func (c *Controller) Leave() {
	c.stop()
	if !c.open {
		return
	}
	c.schedule(c.closeDelay, false)
}

// Toggle 键盘激活：立即切换
func (c *Controller) Toggle() {
	c.stop()
	c.set(!c.open)
}

// Close 立即关闭并取消等待中的动作
func (c *Controller) Close() {
	c.stop()
	c.set(false)
}

func (c *Controller) schedule(d time.Duration, open bool) {
	if d == 0 {
		c.set(open)
		return
	}
	c.cancel = c.sched.After(d, func() {
		c.cancel = nil
		c.set(open)
	})
}

func (c *Controller) stop() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) set(open bool) {
	if c.open == open {
		return
	}
	c.open = open
	c.log.Debug("Popover state changed", zap.String("popover", c.name), zap.Bool("open", open))
	if c.onChange != nil {
		c.onChange(open)
	}
}
