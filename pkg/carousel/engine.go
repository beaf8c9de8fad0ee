// Package carousel 实现内容轨道的无限轮播引擎
//
// 引擎把有限的原始卡片包装成一条只追加、按需增长的回收序列，用取模运算
// 把逻辑游标映射回原始卡片，从而呈现一条看起来无限、平滑滚动的卡片带。
// next、previous、goToPage 和 resize 全部经由同一个定位原语完成。
//
// 状态机：
//
//	Idle --Next/Previous/GoToPage--> Moving --(过渡完成)--> Idle
//
// Moving 期间的移动请求被直接丢弃（不排队）。Resize 在两种状态下都有效，
// 且本身不经过 Moving。
//
// 引擎不是线程安全的：所有方法和宿主回调都必须在同一个事件循环上执行。
package carousel

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// State 引擎对外可读状态
type State struct {
	CurrentIndex int
	IsMoving     bool
	TotalPages   int
}

// Engine 单条轨道的轮播引擎
type Engine[T any] struct {
	host Host
	cfg  Config
	log  *zap.Logger

	originals []T
	seq       *Sequence[T]
	geometry  Geometry

	currentIndex int
	offset       float64
	moving       bool
	destroyed    bool

	pagination Pagination
	controls   Controls

	cancelResize func()
	unsubscribe  func()
	onUpdate     func()
}

// New 创建轮播引擎
//
// cards 为空时返回 *EmptyInputError，且不会物化任何序列。
// 成功时引擎已完成初始物化、测量，并无动画地定位到逻辑位置 0。
func New[T any](host Host, cards []T, cfg Config, opts ...Option) (*Engine[T], error) {
	if len(cards) == 0 {
		return nil, &EmptyInputError{Label: cfg.Label}
	}
	if host == nil {
		return nil, ErrNilHost
	}

	cfg, err := cfg.normalize(len(cards))
	if err != nil {
		return nil, err
	}

	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	originals := slices.Clone(cards)
	e := &Engine[T]{
		host:      host,
		cfg:       cfg,
		log:       o.log,
		onUpdate:  o.onUpdate,
		originals: originals,
		seq:       NewSequence(originals, cfg.Visible+cfg.Step*seedPages),
	}

	e.unsubscribe = host.OnViewportResize(e.Resize)
	host.OnTransitionSettled(e.handleTransitionSettled)

	e.measure()
	e.position(false)

	e.log.Debug("Carousel created",
		zap.String("label", cfg.Label),
		zap.Int("cards", len(originals)),
		zap.Int("visible", cfg.Visible),
		zap.Int("step", cfg.Step),
		zap.Bool("infinite", cfg.Infinite),
		zap.Int("materialized", e.seq.Len()))
	return e, nil
}

// Next 向后移动 step 张卡片
//
// 移动中调用被忽略；非无限模式下 next 按钮禁用时也被忽略。
// 返回是否发起了移动。
func (e *Engine[T]) Next() bool {
	if !e.canMove() {
		return false
	}
	if !e.cfg.Infinite && e.controls.NextDisabled {
		return false
	}
	e.moveTo(e.currentIndex + e.cfg.Step)
	return true
}

// Previous 向前移动 step 张卡片
//
// 无限模式下游标不足一步时，先把游标无动画地前移 lcm(cardCount, step) 的整数倍
// （画面完全相同），在下一次绘制后再执行带动画的后退，游标永远不会为负。
func (e *Engine[T]) Previous() bool {
	if !e.canMove() {
		return false
	}
	if !e.cfg.Infinite {
		if e.controls.PrevDisabled {
			return false
		}
		e.moveTo(max(e.currentIndex-e.cfg.Step, 0))
		return true
	}
	if e.currentIndex < e.cfg.Step {
		e.rebaseThenPrevious()
		return true
	}
	e.moveTo(e.currentIndex - e.cfg.Step)
	return true
}

// GoToPage 跳转到第 page 页（从 0 开始），currentIndex = page*step
//
// page 被限制在 [0, TotalPages-1]。目标与当前位置相同时不移动。
func (e *Engine[T]) GoToPage(page int) bool {
	if !e.canMove() {
		return false
	}
	total := e.pagination.Total
	page = max(0, min(page, total-1))
	target := page * e.cfg.Step
	if target == e.currentIndex {
		return false
	}
	e.moveTo(target)
	return true
}

// Resize 请求重新测量（去抖）
//
// 静默窗口内只有最后一次调用生效。
func (e *Engine[T]) Resize() {
	if e.destroyed {
		return
	}
	if e.cancelResize != nil {
		e.cancelResize()
	}
	e.cancelResize = e.host.After(e.cfg.ResizeDebounce, func() {
		e.cancelResize = nil
		e.applyResize()
	})
}

// Destroy 取消待执行的去抖任务、取消订阅并与宿主解除关联
// 可重复调用
func (e *Engine[T]) Destroy() {
	if e.destroyed {
		return
	}
	e.destroyed = true
	if e.cancelResize != nil {
		e.cancelResize()
		e.cancelResize = nil
	}
	if e.unsubscribe != nil {
		e.unsubscribe()
		e.unsubscribe = nil
	}
	if d, ok := e.host.(Detacher); ok {
		d.Detach()
	}
	e.onUpdate = nil
	e.log.Debug("Carousel destroyed", zap.String("label", e.cfg.Label))
}

// CheckCapacity 检查剩余尾部是否低于低水位，低于时按批次扩容
// 返回是否发生了扩容
func (e *Engine[T]) CheckCapacity() bool {
	if e.Remaining() >= e.cfg.LowWater {
		return false
	}
	before := e.seq.Len()
	e.seq.Grow(e.cfg.GrowthBatch)
	e.log.Debug("Sequence grown",
		zap.String("label", e.cfg.Label),
		zap.Int("from", before),
		zap.Int("to", e.seq.Len()))
	return true
}

// CurrentIndex 当前逻辑游标
func (e *Engine[T]) CurrentIndex() int { return e.currentIndex }

// IsMoving 是否有动画移动正在进行
func (e *Engine[T]) IsMoving() bool { return e.moving }

// IsDestroyed 是否已销毁
func (e *Engine[T]) IsDestroyed() bool { return e.destroyed }

// State 当前状态快照
func (e *Engine[T]) State() State {
	return State{CurrentIndex: e.currentIndex, IsMoving: e.moving, TotalPages: e.pagination.Total}
}

// Config 规范化后的配置
func (e *Engine[T]) Config() Config { return e.cfg }

// Label 轨道标签
func (e *Engine[T]) Label() string { return e.cfg.Label }

// Geometry 当前几何参数
func (e *Engine[T]) Geometry() Geometry { return e.geometry }

// Offset 最近一次应用的平移量
func (e *Engine[T]) Offset() float64 { return e.offset }

// Controls 方向按钮禁用状态
func (e *Engine[T]) Controls() Controls { return e.controls }

// Pagination 分页状态
func (e *Engine[T]) Pagination() Pagination { return e.pagination }

// CurrentPageLabel 形如 "2 / 3" 的页码标签
func (e *Engine[T]) CurrentPageLabel() string { return e.pagination.Label }

// CardCount 原始卡片数
func (e *Engine[T]) CardCount() int { return len(e.originals) }

// Capacity 已物化卡片数
func (e *Engine[T]) Capacity() int { return e.seq.Len() }

// Remaining 当前窗口之后尚未消费的尾部长度
func (e *Engine[T]) Remaining() int {
	return e.seq.Len() - e.currentIndex - e.cfg.Visible
}

// Cards 全部已物化卡片
func (e *Engine[T]) Cards() []MaterializedCard[T] {
	return e.seq.Range(0, e.seq.Len())
}

// Window 当前游标处可见的 visible 张卡片
func (e *Engine[T]) Window() []MaterializedCard[T] {
	return e.seq.Range(e.currentIndex, e.currentIndex+e.cfg.Visible)
}

// CardsAt 返回平移量为 offset 时与视口相交的卡片
//
// 渲染层在过渡动画期间使用插值后的 offset 调用。
func (e *Engine[T]) CardsAt(offset float64) []MaterializedCard[T] {
	item := e.geometry.ItemWidth
	if item <= 0 {
		return e.Window()
	}
	first := int(-offset / item)
	if -offset < 0 {
		first--
	}
	last := int((-offset+e.geometry.ViewportWidth)/item) + 1
	return e.seq.Range(first, last)
}

// canMove 移动前置条件
func (e *Engine[T]) canMove() bool {
	return !e.destroyed && !e.moving
}

// moveTo 设置游标并以动画定位
func (e *Engine[T]) moveTo(target int) {
	from := e.currentIndex
	e.currentIndex = target
	e.ensureWindow()
	e.log.Debug("Carousel move",
		zap.String("label", e.cfg.Label),
		zap.Int("from", from),
		zap.Int("to", target))
	if !e.position(true) {
		// 无动画时长：同步完成
		e.completeMove()
	}
}

// rebaseThenPrevious 无限模式下在游标不足一步时后退
//
// 游标前移 lcm(cardCount, step) 的整数倍：画面不变，且游标仍是 step 的整数倍。
func (e *Engine[T]) rebaseThenPrevious() {
	period := lcm(len(e.originals), e.cfg.Step)
	cycles := (e.cfg.Step - e.currentIndex + period - 1) / period
	e.currentIndex += cycles * period
	e.ensureWindow()
	e.position(false)

	// 在重定位完成绘制之前保留 Moving，拒绝其它移动
	e.moving = true
	e.log.Debug("Carousel rebased",
		zap.String("label", e.cfg.Label),
		zap.Int("index", e.currentIndex))

	e.host.ScheduleAfterPaint(func() {
		e.moving = false
		if e.destroyed {
			return
		}
		e.moveTo(e.currentIndex - e.cfg.Step)
	})
}

func lcm(a, b int) int {
	x, y := a, b
	for y != 0 {
		x, y = y, x%y
	}
	return a / x * b
}

// ensureWindow 保证当前窗口已物化
func (e *Engine[T]) ensureWindow() {
	e.seq.EnsureCapacity(e.currentIndex+e.cfg.Visible, e.cfg.GrowthBatch)
}

// position 定位原语：应用 -(currentIndex*itemWidth) 平移
//
// 返回是否发起了需要等待完成通知的动画。
func (e *Engine[T]) position(animate bool) bool {
	animate = animate && e.cfg.Duration > 0
	e.offset = e.geometry.OffsetFor(e.currentIndex)
	if animate {
		e.moving = true
	}
	e.host.Translate(e.offset, Transition{
		Animate:  animate,
		Duration: e.cfg.Duration,
		Easing:   e.cfg.Easing,
	})
	e.updateControls()
	return animate
}

// handleTransitionSettled 过渡完成回调
//
// 销毁后或没有移动在进行时也可能被调用。
func (e *Engine[T]) handleTransitionSettled() {
	if !e.moving {
		return
	}
	e.moving = false
	if e.destroyed {
		return
	}
	e.completeMove()
}

// completeMove 移动完成后的扩容与状态刷新
func (e *Engine[T]) completeMove() {
	if e.cfg.Infinite {
		e.CheckCapacity()
	}
	e.updateControls()
}

// applyResize 去抖后的实际重新测量
func (e *Engine[T]) applyResize() {
	if e.destroyed {
		return
	}
	e.measure()
	wasMoving := e.moving
	// 立即定位会打断进行中的过渡，视为该移动已完成
	e.moving = false
	e.position(false)
	if wasMoving {
		e.completeMove()
	}
	e.log.Debug("Carousel resized",
		zap.String("label", e.cfg.Label),
		zap.Float64("viewport", e.geometry.ViewportWidth),
		zap.Float64("card", e.geometry.CardWidth))
}

// measure 测量视口并把卡片宽度应用到所有物化卡片
func (e *Engine[T]) measure() {
	e.geometry = MeasureGeometry(e.host.MeasureWidth(), e.cfg.Visible, e.cfg.Gap)
	e.seq.SetWidth(e.geometry.CardWidth)
	e.host.SetCardWidth(e.geometry.CardWidth)
}

// updateControls 重新计算分页与按钮状态
func (e *Engine[T]) updateControls() {
	count := len(e.originals)
	e.pagination = ComputePagination(e.currentIndex, count, e.cfg.Step)
	e.controls = ComputeControls(e.currentIndex, count, e.cfg.Visible, e.cfg.Infinite)
	if e.onUpdate != nil && !e.destroyed {
		e.onUpdate()
	}
}

// String 调试输出
func (e *Engine[T]) String() string {
	return fmt.Sprintf("carousel[%s] index=%d moving=%t page=%s cap=%d",
		e.cfg.Label, e.currentIndex, e.moving, e.pagination.Label, e.seq.Len())
}
