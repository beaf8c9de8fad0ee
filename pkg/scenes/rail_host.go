package scenes

import (
	"time"

	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/clock"
	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/utils"
)

// tween 一次进行中的平移过渡
type tween struct {
	from, to float64
	elapsed  time.Duration
	duration time.Duration
	ease     utils.EasingFunc
}

// RailHost 桌面端的轨道宿主，实现 carousel.Host
//
// 过渡动画由 Update 按帧推进，完成时触发 settled 回调；
// ScheduleAfterPaint 注册的回调在下一次 Draw（MarkPainted）之后的 Update 中执行。
// RailHost 本身不调用任何 ebiten 绘制接口，绘制由 HomeScene 读取 Offset 完成。
//
// Thread Safety Note:
// RailHost is NOT thread-safe. All methods run on the ebiten Update/Draw goroutine.
type RailHost struct {
	id       string
	viewport *page.Viewport
	sched    *clock.Scheduler
	width    func() float64
	log      *zap.Logger

	offset    float64
	cardWidth float64
	tw        *tween
	instant   bool

	settled    []func()
	afterPaint []func()
	ready      []func()
	unsubs     []func()
	detached   bool
}

// NewRailHost 创建轨道宿主
//
// 参数：
//   - id: 轨道标识（日志用）
//   - viewport: 页面视口，用于订阅尺寸变化
//   - sched: 帧驱动调度器，承载去抖等延时任务
//   - width: 返回轨道视口当前宽度
//   - log: 日志记录器，可为 nil
func NewRailHost(id string, viewport *page.Viewport, sched *clock.Scheduler, width func() float64, log *zap.Logger) *RailHost {
	if log == nil {
		log = zap.NewNop()
	}
	return &RailHost{
		id:       id,
		viewport: viewport,
		sched:    sched,
		width:    width,
		log:      log,
	}
}

// MeasureWidth 实现 carousel.Host
func (h *RailHost) MeasureWidth() float64 {
	return h.width()
}

// ScheduleAfterPaint 实现 carousel.Host
func (h *RailHost) ScheduleAfterPaint(fn func()) {
	if h.detached {
		return
	}
	h.afterPaint = append(h.afterPaint, fn)
}

// OnViewportResize 实现 carousel.Host
func (h *RailHost) OnViewportResize(fn func()) func() {
	unsub := h.viewport.Subscribe(fn)
	h.unsubs = append(h.unsubs, unsub)
	return unsub
}

// OnTransitionSettled 实现 carousel.Host
func (h *RailHost) OnTransitionSettled(fn func()) {
	h.settled = append(h.settled, fn)
}

// Translate 实现 carousel.Host
//
// 立即平移会丢弃进行中的过渡且不触发 settled。
func (h *RailHost) Translate(offset float64, tr carousel.Transition) {
	if !tr.Animate {
		h.tw = nil
		h.offset = offset
		return
	}

	ease, ok := utils.EasingByName(tr.Easing)
	if !ok {
		h.log.Debug("Unknown easing, using ease", zap.String("rail", h.id), zap.String("easing", tr.Easing))
	}
	duration := tr.Duration
	if h.instant {
		duration = 0
	}
	h.tw = &tween{
		from:     h.offset,
		to:       offset,
		duration: duration,
		ease:     ease,
	}
}

// SetCardWidth 实现 carousel.Host
func (h *RailHost) SetCardWidth(width float64) {
	h.cardWidth = width
}

// After 实现 carousel.Host
func (h *RailHost) After(d time.Duration, fn func()) func() {
	return h.sched.After(d, func() {
		if h.detached {
			return
		}
		fn()
	})
}

// Detach 实现 carousel.Detacher：取消订阅并丢弃所有待执行回调
func (h *RailHost) Detach() {
	if h.detached {
		return
	}
	h.detached = true
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.unsubs = nil
	h.settled = nil
	h.afterPaint = nil
	h.ready = nil
	h.tw = nil
	h.log.Debug("Rail host detached", zap.String("rail", h.id))
}

// SetReducedMotion 减少动态效果：之后的动画平移在下一帧直接完成
func (h *RailHost) SetReducedMotion(enabled bool) {
	h.instant = enabled
}

// MarkPainted 通知宿主一帧已绘制完成
func (h *RailHost) MarkPainted() {
	if len(h.afterPaint) == 0 {
		return
	}
	h.ready = append(h.ready, h.afterPaint...)
	h.afterPaint = nil
}

// Update 推进一帧
//
// 先执行上一帧绘制后到期的回调（可能发起新的过渡），再推进过渡动画。
func (h *RailHost) Update(dt time.Duration) {
	if h.detached {
		return
	}

	if len(h.ready) > 0 {
		ready := h.ready
		h.ready = nil
		for _, fn := range ready {
			fn()
			if h.detached {
				return
			}
		}
	}

	if h.tw == nil {
		return
	}
	h.tw.elapsed += dt
	if h.tw.elapsed < h.tw.duration {
		t := float64(h.tw.elapsed) / float64(h.tw.duration)
		h.offset = utils.Lerp(h.tw.from, h.tw.to, h.tw.ease(t))
		return
	}

	h.offset = h.tw.to
	h.tw = nil
	for _, fn := range h.settled {
		fn()
	}
}

// Offset 当前渲染平移量（过渡期间为插值）
func (h *RailHost) Offset() float64 {
	return h.offset
}

// CardWidth 当前卡片宽度
func (h *RailHost) CardWidth() float64 {
	return h.cardWidth
}

// Animating 是否有过渡正在进行
func (h *RailHost) Animating() bool {
	return h.tw != nil
}

// Detached 是否已与引擎解除关联
func (h *RailHost) Detached() bool {
	return h.detached
}
