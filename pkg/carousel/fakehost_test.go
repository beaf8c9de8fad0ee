package carousel

import (
	"time"

	"github.com/decker502/flixrail/pkg/clock"
)

// fakeHost 无界面宿主，用于测试
//
// 过渡不会自动完成，测试通过 settle() 模拟 transitionend。
type fakeHost struct {
	width       float64
	measures    int
	cardWidth   float64
	translates  []Transition
	offset      float64
	afterPaint  []func()
	resizeSubs  map[int]func()
	nextSubID   int
	settled     func()
	scheduler   *clock.Scheduler
	detached    bool
	inFlight    bool
	settleCalls int
}

func newFakeHost(width float64) *fakeHost {
	return &fakeHost{
		width:      width,
		resizeSubs: make(map[int]func()),
		scheduler:  clock.NewScheduler(),
	}
}

func (h *fakeHost) MeasureWidth() float64 {
	h.measures++
	return h.width
}

func (h *fakeHost) ScheduleAfterPaint(fn func()) {
	h.afterPaint = append(h.afterPaint, fn)
}

func (h *fakeHost) OnViewportResize(fn func()) func() {
	h.nextSubID++
	id := h.nextSubID
	h.resizeSubs[id] = fn
	return func() { delete(h.resizeSubs, id) }
}

func (h *fakeHost) OnTransitionSettled(fn func()) {
	h.settled = fn
}

func (h *fakeHost) Translate(offset float64, tr Transition) {
	h.offset = offset
	h.translates = append(h.translates, tr)
	h.inFlight = tr.Animate
}

func (h *fakeHost) SetCardWidth(width float64) {
	h.cardWidth = width
}

func (h *fakeHost) After(d time.Duration, fn func()) func() {
	return h.scheduler.After(d, fn)
}

func (h *fakeHost) Detach() {
	h.detached = true
}

// settle 模拟过渡自然完成
func (h *fakeHost) settle() {
	if !h.inFlight {
		return
	}
	h.inFlight = false
	h.settleCalls++
	if h.settled != nil {
		h.settled()
	}
}

// paint 模拟一次绘制，执行所有 after-paint 回调
func (h *fakeHost) paint() {
	pending := h.afterPaint
	h.afterPaint = nil
	for _, fn := range pending {
		fn()
	}
}

// resizeTo 改变视口宽度并广播
func (h *fakeHost) resizeTo(width float64) {
	h.width = width
	for _, fn := range h.resizeSubs {
		fn()
	}
}

// advance 推进去抖计时器
func (h *fakeHost) advance(d time.Duration) {
	h.scheduler.Advance(d)
}

// testCards 生成 n 张测试卡片
func testCards(n int) []string {
	cards := make([]string, n)
	for i := range cards {
		cards[i] = string(rune('A' + i%26))
	}
	return cards
}
