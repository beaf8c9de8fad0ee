package scenes

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/clock"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/page"
)

const frame = 16 * time.Millisecond

type railFixture struct {
	viewport *page.Viewport
	sched    *clock.Scheduler
	host     *RailHost
	engine   *carousel.Engine[content.Card]
}

func newRailFixture(t *testing.T, cards int, infinite bool) *railFixture {
	t.Helper()
	f := &railFixture{
		viewport: page.NewViewport(1000, 800),
		sched:    clock.NewScheduler(),
	}
	f.host = NewRailHost("test", f.viewport, f.sched, func() float64 {
		w, _ := f.viewport.Size()
		return w
	}, nil)

	list := make([]content.Card, cards)
	for i := range list {
		list[i] = content.Card{ID: content.Text(fmt.Sprintf("c%d", i)), Title: fmt.Sprintf("Card %d", i)}
	}
	cfg := carousel.DefaultConfig()
	cfg.Visible, cfg.Step = 4, 4
	cfg.Infinite = infinite
	cfg.Duration = 400 * time.Millisecond

	eng, err := carousel.New(f.host, list, cfg)
	if err != nil {
		t.Fatalf("carousel.New 失败: %v", err)
	}
	f.engine = eng
	return f
}

// step 模拟一帧：Update、调度器推进、Draw
func (f *railFixture) step(dt time.Duration) {
	f.host.Update(dt)
	f.sched.Advance(dt)
	f.host.MarkPainted()
}

func TestRailHost_InitialLayout(t *testing.T) {
	f := newRailFixture(t, 10, true)

	// (1000 - 3*8) / 4
	if got := f.host.CardWidth(); got != 244 {
		t.Errorf("卡片宽度 = %v, 期望 244", got)
	}
	if f.host.Offset() != 0 {
		t.Errorf("初始平移 = %v, 期望 0", f.host.Offset())
	}
	if f.host.Animating() {
		t.Error("初始定位不应产生过渡")
	}
}

func TestRailHost_NextAnimatesAndSettles(t *testing.T) {
	f := newRailFixture(t, 10, true)

	if !f.engine.Next() {
		t.Fatal("Next 应当发起移动")
	}
	if !f.host.Animating() || !f.engine.IsMoving() {
		t.Fatal("Next 之后应处于过渡中")
	}

	f.step(200 * time.Millisecond)
	mid := f.host.Offset()
	if mid >= 0 || mid <= -1008 {
		t.Errorf("过渡中途平移 = %v, 期望位于 (-1008, 0)", mid)
	}
	if !f.engine.IsMoving() {
		t.Error("过渡未完成时引擎应保持 Moving")
	}

	f.step(200 * time.Millisecond)
	if got := f.host.Offset(); math.Abs(got+1008) > 1e-9 {
		t.Errorf("过渡完成后平移 = %v, 期望 -1008", got)
	}
	if f.engine.IsMoving() {
		t.Error("过渡完成后引擎应回到 Idle")
	}
	if got := f.engine.CurrentPageLabel(); got != "2 / 3" {
		t.Errorf("页码 = %q, 期望 \"2 / 3\"", got)
	}
}

func TestRailHost_MovesDroppedWhileAnimating(t *testing.T) {
	f := newRailFixture(t, 10, true)

	f.engine.Next()
	f.step(frame)
	if f.engine.Next() {
		t.Error("过渡中的 Next 应被丢弃")
	}
	for f.host.Animating() {
		f.step(frame)
	}
	if got := f.engine.CurrentIndex(); got != 4 {
		t.Errorf("CurrentIndex = %d, 期望 4", got)
	}
}

func TestRailHost_PreviousRebasesAfterPaint(t *testing.T) {
	f := newRailFixture(t, 10, true)

	if !f.engine.Previous() {
		t.Fatal("无限模式下 Previous 应当被接受")
	}
	// 重定位：10 张卡片、step 4，游标前移 lcm(10, 4) 到 20
	if got := f.engine.CurrentIndex(); got != 20 {
		t.Fatalf("重定位后 CurrentIndex = %d, 期望 20", got)
	}
	if f.host.Animating() {
		t.Fatal("重定位本身不应产生过渡")
	}

	// 绘制之前不执行后退
	f.host.Update(frame)
	if f.host.Animating() {
		t.Fatal("绘制之前不应开始后退动画")
	}

	f.host.MarkPainted()
	f.host.Update(frame)
	if !f.host.Animating() {
		t.Fatal("绘制之后应开始后退动画")
	}
	if got := f.engine.CurrentIndex(); got != 16 {
		t.Errorf("CurrentIndex = %d, 期望 16", got)
	}
	for f.host.Animating() {
		f.step(frame)
	}
	if got := f.engine.Pagination().Current; got != 2 {
		t.Errorf("当前页 = %d, 期望 2", got)
	}
}

func TestRailHost_ReducedMotion(t *testing.T) {
	f := newRailFixture(t, 10, true)
	f.host.SetReducedMotion(true)

	f.engine.Next()
	if !f.engine.IsMoving() {
		t.Fatal("动画平移仍应经过 Moving")
	}
	f.step(frame)
	if f.engine.IsMoving() || f.host.Animating() {
		t.Error("减少动态效果时过渡应在下一帧完成")
	}
	if got := f.host.Offset(); math.Abs(got+1008) > 1e-9 {
		t.Errorf("平移 = %v, 期望 -1008", got)
	}
}

func TestRailHost_ResizeDebounced(t *testing.T) {
	f := newRailFixture(t, 10, true)

	f.viewport.SetSize(900, 800)
	f.viewport.SetSize(800, 800)
	f.step(100 * time.Millisecond)
	if got := f.host.CardWidth(); got != 244 {
		t.Errorf("去抖窗口内卡片宽度 = %v, 期望保持 244", got)
	}

	f.step(100 * time.Millisecond)
	// (800 - 24) / 4
	if got := f.host.CardWidth(); got != 194 {
		t.Errorf("去抖后卡片宽度 = %v, 期望 194", got)
	}
}

func TestRailHost_ResizeDuringMoveCompletesMove(t *testing.T) {
	f := newRailFixture(t, 10, true)

	f.engine.Next()
	f.viewport.SetSize(800, 800)
	f.step(200 * time.Millisecond)
	if f.engine.IsMoving() {
		t.Error("resize 应当完成进行中的移动")
	}
	if f.host.Animating() {
		t.Error("立即定位应丢弃进行中的过渡")
	}
	// index 4 * (194 + 8)
	if got := f.host.Offset(); math.Abs(got+808) > 1e-9 {
		t.Errorf("平移 = %v, 期望 -808", got)
	}
}

func TestRailHost_DestroyDetaches(t *testing.T) {
	f := newRailFixture(t, 10, true)
	if got := f.viewport.Subscribers(); got != 1 {
		t.Fatalf("订阅数 = %d, 期望 1", got)
	}

	f.engine.Next()
	f.engine.Destroy()
	if !f.host.Detached() {
		t.Error("Destroy 之后宿主应已解除关联")
	}
	if got := f.viewport.Subscribers(); got != 0 {
		t.Errorf("订阅数 = %d, 期望 0", got)
	}

	// 解除关联后推进不应再调用引擎
	f.viewport.SetSize(600, 800)
	f.step(time.Second)
	if f.host.CardWidth() != 244 {
		t.Errorf("解除关联后卡片宽度不应变化, 实际 %v", f.host.CardWidth())
	}
}

func TestRailHost_FiniteControls(t *testing.T) {
	f := newRailFixture(t, 6, false)

	if !f.engine.Controls().PrevDisabled {
		t.Error("非无限模式起始位置 prev 应禁用")
	}
	if f.engine.Previous() {
		t.Error("prev 禁用时 Previous 应被拒绝")
	}
	f.engine.Next()
	for f.host.Animating() {
		f.step(frame)
	}
	if !f.engine.Controls().NextDisabled {
		t.Error("到达末尾后 next 应禁用")
	}
}
