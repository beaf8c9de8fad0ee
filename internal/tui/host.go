package tui

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/clock"
	"github.com/decker502/flixrail/pkg/page"
)

// Host 终端的轨道宿主，实现 carousel.Host，所有长度以字符单元计
//
// 过渡按帧线性插值；单元格很粗，缓动曲线在终端上看不出差别。
// 与桌面端一样，ScheduleAfterPaint 的回调在下一次 Show 之后的 Frame 中执行。
//
// Thread Safety Note:
// Host 不是线程安全的，只能在事件循环 goroutine 上使用。
type Host struct {
	id       string
	viewport *page.Viewport
	sched    *clock.Scheduler
	width    func() float64
	log      *zap.Logger

	offset    float64
	cardWidth float64

	from, to float64
	elapsed  time.Duration
	duration time.Duration
	moving   bool

	settled    []func()
	afterPaint []func()
	ready      []func()
	unsubs     []func()
	detached   bool
}

// NewHost 创建终端轨道宿主
func NewHost(id string, viewport *page.Viewport, sched *clock.Scheduler, width func() float64, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{id: id, viewport: viewport, sched: sched, width: width, log: log}
}

// MeasureWidth 实现 carousel.Host
func (h *Host) MeasureWidth() float64 { return h.width() }

// ScheduleAfterPaint 实现 carousel.Host
func (h *Host) ScheduleAfterPaint(fn func()) {
	if !h.detached {
		h.afterPaint = append(h.afterPaint, fn)
	}
}

// OnViewportResize 实现 carousel.Host
func (h *Host) OnViewportResize(fn func()) func() {
	unsub := h.viewport.Subscribe(fn)
	h.unsubs = append(h.unsubs, unsub)
	return unsub
}

// OnTransitionSettled 实现 carousel.Host
func (h *Host) OnTransitionSettled(fn func()) {
	h.settled = append(h.settled, fn)
}

// Translate 实现 carousel.Host
func (h *Host) Translate(offset float64, tr carousel.Transition) {
	if !tr.Animate {
		h.moving = false
		h.offset = offset
		return
	}
	h.from, h.to = h.offset, offset
	h.elapsed, h.duration = 0, tr.Duration
	h.moving = true
}

// SetCardWidth 实现 carousel.Host
func (h *Host) SetCardWidth(width float64) { h.cardWidth = width }

// After 实现 carousel.Host
func (h *Host) After(d time.Duration, fn func()) func() {
	return h.sched.After(d, func() {
		if !h.detached {
			fn()
		}
	})
}

// Detach 实现 carousel.Detacher
func (h *Host) Detach() {
	if h.detached {
		return
	}
	h.detached = true
	for _, unsub := range h.unsubs {
		unsub()
	}
	h.unsubs, h.settled, h.afterPaint, h.ready = nil, nil, nil, nil
	h.moving = false
	h.log.Debug("Rail host detached", zap.String("rail", h.id))
}

// Shown 一帧已输出到终端
func (h *Host) Shown() {
	h.ready = append(h.ready, h.afterPaint...)
	h.afterPaint = nil
}

// Frame 推进一帧：先执行绘制后到期的回调，再推进过渡
func (h *Host) Frame(dt time.Duration) {
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
	if !h.moving {
		return
	}
	h.elapsed += dt
	if h.elapsed < h.duration {
		h.offset = h.from + (h.to-h.from)*float64(h.elapsed)/float64(h.duration)
		return
	}
	h.offset = h.to
	h.moving = false
	for _, fn := range h.settled {
		fn()
	}
}

// Offset 当前平移量（单元格，可能为小数）
func (h *Host) Offset() float64 { return h.offset }

// Column 平移量取整后的列偏移
func (h *Host) Column() int { return int(math.Round(h.offset)) }

// CardWidth 当前卡片宽度
func (h *Host) CardWidth() float64 { return h.cardWidth }

// Moving 是否有过渡正在进行
func (h *Host) Moving() bool { return h.moving }

// Detached 是否已与引擎解除关联
func (h *Host) Detached() bool { return h.detached }
