package carousel

import (
	"errors"
	"testing"
	"time"
)

// newTestEngine 创建测试引擎：9 张卡片，visible=6，step=3，视口 600 无间距
func newTestEngine(t *testing.T, mutate func(*Config)) (*Engine[string], *fakeHost) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Gap = 0
	cfg.Label = "test"
	if mutate != nil {
		mutate(&cfg)
	}
	host := newFakeHost(600)
	e, err := New(host, testCards(9), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e, host
}

// TestNewInitialState 测试构造后的初始状态
func TestNewInitialState(t *testing.T) {
	e, host := newTestEngine(t, nil)

	if e.CurrentIndex() != 0 {
		t.Errorf("CurrentIndex() = %d, 期望 0", e.CurrentIndex())
	}
	if e.IsMoving() {
		t.Error("构造后不应处于 Moving 状态")
	}
	if got, want := e.Capacity(), 6+3*10; got != want {
		t.Errorf("Capacity() = %d, 期望 %d", got, want)
	}
	if e.Geometry().CardWidth != 100 {
		t.Errorf("CardWidth = %v, 期望 100", e.Geometry().CardWidth)
	}
	if host.cardWidth != 100 {
		t.Errorf("宿主卡片宽度 = %v, 期望 100", host.cardWidth)
	}
	if len(host.translates) != 1 || host.translates[0].Animate {
		t.Errorf("初始定位应为一次无动画平移, got %+v", host.translates)
	}
	if e.CurrentPageLabel() != "1 / 3" {
		t.Errorf("CurrentPageLabel() = %q, 期望 %q", e.CurrentPageLabel(), "1 / 3")
	}
	for _, c := range e.Cards() {
		if c.Width != 100 {
			t.Fatalf("卡片 %d 宽度 = %v, 期望 100", c.Position, c.Width)
		}
	}
}

// TestNewEmptyInput 测试空卡片列表构造失败
func TestNewEmptyInput(t *testing.T) {
	host := newFakeHost(600)
	e, err := New(host, []string{}, Config{Label: "empty"})

	var emptyErr *EmptyInputError
	if !errors.As(err, &emptyErr) {
		t.Fatalf("error = %v, 期望 *EmptyInputError", err)
	}
	if emptyErr.Label != "empty" {
		t.Errorf("Label = %q, 期望 %q", emptyErr.Label, "empty")
	}
	if e != nil {
		t.Error("失败时不应返回引擎")
	}
	if host.measures != 0 || len(host.translates) != 0 {
		t.Error("失败时不应测量或定位")
	}
	if len(host.resizeSubs) != 0 {
		t.Error("失败时不应订阅 resize")
	}
}

// TestNewInvalidConfig 测试非法配置
func TestNewInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"负的可见数", func(c *Config) { c.Visible = -1 }},
		{"负的步长", func(c *Config) { c.Step = -2 }},
		{"负的时长", func(c *Config) { c.Duration = -time.Millisecond }},
		{"负的间距", func(c *Config) { c.Gap = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			_, err := New(newFakeHost(600), testCards(3), cfg)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error = %v, 期望 ErrInvalidConfig", err)
			}
		})
	}

	if _, err := New[string](nil, testCards(3), DefaultConfig()); !errors.Is(err, ErrNilHost) {
		t.Errorf("nil host error = %v, 期望 ErrNilHost", err)
	}
}

// TestNewZeroConfigDefaults 测试零值字段使用默认值
func TestNewZeroConfigDefaults(t *testing.T) {
	e, err := New(newFakeHost(600), testCards(4), Config{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	cfg := e.Config()
	if cfg.Visible != DefaultVisible || cfg.Step != DefaultStep || cfg.Easing != DefaultEasing {
		t.Errorf("默认值未生效: %+v", cfg)
	}
	if cfg.GrowthBatch != 8 {
		t.Errorf("GrowthBatch = %d, 期望 cardCount*2 = 8", cfg.GrowthBatch)
	}
	if cfg.LowWater != 9 {
		t.Errorf("LowWater = %d, 期望 step*3 = 9", cfg.LowWater)
	}
}

// TestGrowthInvariant 测试任意次 next 之后尾部不变量成立
func TestGrowthInvariant(t *testing.T) {
	e, host := newTestEngine(t, nil)

	for i := 1; i <= 100; i++ {
		if !e.Next() {
			t.Fatalf("第 %d 次 Next() 被拒绝", i)
		}
		host.settle()
		if e.Remaining() < 0 {
			t.Fatalf("第 %d 次移动后 Remaining() = %d", i, e.Remaining())
		}
		if e.Capacity()-e.CurrentIndex()-e.Config().Visible < 0 {
			t.Fatalf("第 %d 次移动后暴露了未物化位置", i)
		}
	}

	// 位置编号连续且按原始卡片循环
	for i, c := range e.Cards() {
		if c.Position != i {
			t.Fatalf("cards[%d].Position = %d", i, c.Position)
		}
		if c.OriginalIndex != i%9 {
			t.Fatalf("cards[%d].OriginalIndex = %d, 期望 %d", i, c.OriginalIndex, i%9)
		}
	}
}

// TestGrowthInvariantZeroDuration 测试无动画时移动同步完成
func TestGrowthInvariantZeroDuration(t *testing.T) {
	e, host := newTestEngine(t, func(c *Config) { c.Duration = 0 })

	for i := 0; i < 40; i++ {
		e.Next()
		if e.IsMoving() {
			t.Fatal("Duration=0 时不应进入 Moving")
		}
		if e.Remaining() < 0 {
			t.Fatalf("Remaining() = %d", e.Remaining())
		}
	}
	for _, tr := range host.translates {
		if tr.Animate {
			t.Fatal("Duration=0 时不应发起动画")
		}
	}
}

// TestGrowthBatch 测试低水位触发按批次扩容
func TestGrowthBatch(t *testing.T) {
	e, host := newTestEngine(t, nil)
	initial := e.Capacity() // 36

	// Remaining = 36 - idx - 6，低水位 9：idx=24 时 Remaining=6 < 9
	for e.CurrentIndex() < 21 {
		e.Next()
		host.settle()
	}
	if e.Capacity() != initial {
		t.Fatalf("过早扩容: Capacity() = %d", e.Capacity())
	}

	e.Next()
	host.settle()
	if got, want := e.Capacity(), initial+18; got != want {
		t.Errorf("Capacity() = %d, 期望 %d", got, want)
	}
}

// TestCheckCapacity 测试容量检查操作
func TestCheckCapacity(t *testing.T) {
	e, _ := newTestEngine(t, func(c *Config) { c.LowWater = 1000 })
	before := e.Capacity()
	if !e.CheckCapacity() {
		t.Fatal("低于低水位时 CheckCapacity() 应扩容")
	}
	if e.Capacity() != before+18 {
		t.Errorf("Capacity() = %d, 期望 %d", e.Capacity(), before+18)
	}

	e2, _ := newTestEngine(t, nil)
	if e2.CheckCapacity() {
		t.Error("高于低水位时 CheckCapacity() 不应扩容")
	}
}

// TestStepMonotonicity 测试 next k 次后 previous k 次回到 0
func TestStepMonotonicity(t *testing.T) {
	for _, k := range []int{1, 3, 7, 20} {
		e, host := newTestEngine(t, nil)
		for i := 0; i < k; i++ {
			e.Next()
			host.settle()
		}
		if got, want := e.CurrentIndex(), k*3; got != want {
			t.Fatalf("k=%d: CurrentIndex() = %d, 期望 %d", k, got, want)
		}
		for i := 0; i < k; i++ {
			e.Previous()
			host.settle()
		}
		if e.CurrentIndex() != 0 {
			t.Errorf("k=%d: 回退后 CurrentIndex() = %d, 期望 0", k, e.CurrentIndex())
		}
	}
}

// TestPaginationLabel 测试页码标签
func TestPaginationLabel(t *testing.T) {
	e, host := newTestEngine(t, nil)
	want := []string{"1 / 3", "2 / 3", "3 / 3", "1 / 3", "2 / 3"}
	for i, label := range want {
		if i > 0 {
			e.Next()
			host.settle()
		}
		if got := e.CurrentPageLabel(); got != label {
			t.Errorf("index=%d: label = %q, 期望 %q", e.CurrentIndex(), got, label)
		}
		markers := e.Pagination().Markers()
		active := 0
		for _, m := range markers {
			if m {
				active++
			}
		}
		if active != 1 {
			t.Errorf("index=%d: 激活指示器数 = %d, 期望 1", e.CurrentIndex(), active)
		}
	}
}

// TestBusyRejection 测试移动中的请求被丢弃
func TestBusyRejection(t *testing.T) {
	e, host := newTestEngine(t, nil)

	e.Next()
	if !e.IsMoving() {
		t.Fatal("Next() 后应处于 Moving")
	}
	index := e.CurrentIndex()

	if e.Next() {
		t.Error("Moving 时 Next() 应返回 false")
	}
	if e.Previous() {
		t.Error("Moving 时 Previous() 应返回 false")
	}
	if e.GoToPage(2) {
		t.Error("Moving 时 GoToPage() 应返回 false")
	}
	if e.CurrentIndex() != index || !e.IsMoving() {
		t.Errorf("拒绝后状态改变: index=%d moving=%t", e.CurrentIndex(), e.IsMoving())
	}

	host.settle()
	if e.IsMoving() {
		t.Error("过渡完成后应回到 Idle")
	}
	if !e.Next() {
		t.Error("Idle 时 Next() 应被接受")
	}
}

// TestNonInfiniteControls 测试非无限模式按钮禁用
func TestNonInfiniteControls(t *testing.T) {
	host := newFakeHost(400)
	cfg := Config{Visible: 4, Step: 2, Infinite: false, Duration: 300 * time.Millisecond}
	e, err := New(host, testCards(10), cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if !e.Controls().PrevDisabled {
		t.Error("index=0 时 previous 应禁用")
	}
	if e.Controls().NextDisabled {
		t.Error("index=0 时 next 不应禁用")
	}
	if e.Previous() {
		t.Error("previous 禁用时 Previous() 应被拒绝")
	}

	if !e.GoToPage(4) {
		t.Fatal("GoToPage(4) 应被接受")
	}
	host.settle()
	if e.CurrentIndex() != 8 {
		t.Fatalf("CurrentIndex() = %d, 期望 8", e.CurrentIndex())
	}
	if !e.Controls().NextDisabled {
		t.Error("index=8 时 next 应禁用")
	}
	if e.Next() {
		t.Error("next 禁用时 Next() 应被拒绝")
	}

	// 从头逐步前进，到达 cardCount-visible 时 next 禁用
	e.GoToPage(0)
	host.settle()
	for e.Next() {
		host.settle()
	}
	if e.CurrentIndex() != 6 {
		t.Errorf("逐步前进停在 %d, 期望 6", e.CurrentIndex())
	}
}

// TestInfiniteControlsAlwaysEnabled 测试无限模式按钮始终可用
func TestInfiniteControlsAlwaysEnabled(t *testing.T) {
	e, host := newTestEngine(t, nil)
	for i := 0; i < 5; i++ {
		if c := e.Controls(); c.PrevDisabled || c.NextDisabled {
			t.Fatalf("无限模式按钮被禁用: %+v", c)
		}
		e.Next()
		host.settle()
	}
}

// TestPreviousRebase 测试无限模式从 0 后退时先重定位再动画
func TestPreviousRebase(t *testing.T) {
	e, host := newTestEngine(t, nil)

	if !e.Previous() {
		t.Fatal("无限模式 Previous() 应被接受")
	}
	if e.CurrentIndex() != 9 {
		t.Fatalf("重定位后 CurrentIndex() = %d, 期望 9", e.CurrentIndex())
	}
	last := host.translates[len(host.translates)-1]
	if last.Animate {
		t.Error("重定位必须是无动画平移")
	}
	if !e.IsMoving() {
		t.Error("重定位后到绘制前应拒绝其它移动")
	}
	if e.Next() {
		t.Error("重定位期间 Next() 应被拒绝")
	}

	host.paint()
	if e.CurrentIndex() != 6 {
		t.Fatalf("绘制后 CurrentIndex() = %d, 期望 6", e.CurrentIndex())
	}
	if !host.translates[len(host.translates)-1].Animate {
		t.Error("重定位之后的后退应带动画")
	}
	host.settle()
	if e.IsMoving() {
		t.Error("过渡完成后应回到 Idle")
	}
	if e.CurrentPageLabel() != "3 / 3" {
		t.Errorf("label = %q, 期望 %q", e.CurrentPageLabel(), "3 / 3")
	}
	if e.CurrentIndex() < 0 {
		t.Error("游标不应为负")
	}
}

// TestPreviousRebaseStaysOnStepGrid 测试卡片数不是 step 整数倍时，
// 跨越起点的后退仍让游标保持为 step 的整数倍，画面与对应原始卡片一致
func TestPreviousRebaseStaysOnStepGrid(t *testing.T) {
	mod := func(a, n int) int { return (a%n + n) % n }

	tests := []struct {
		name      string
		cards     int
		step      int
		rebasedTo int // 第一次后退时重定位后的游标
	}{
		{"10 张 step 3", 10, 3, 30},
		{"7 张 step 3", 7, 3, 21},
		{"2 张 step 3", 2, 3, 6},
		{"9 张 step 3", 9, 3, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Gap = 0
			cfg.Visible, cfg.Step = 4, tt.step
			cfg.Infinite = true
			host := newFakeHost(600)
			e, err := New(host, testCards(tt.cards), cfg)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			if !e.Previous() {
				t.Fatal("无限模式 Previous() 应被接受")
			}
			if e.CurrentIndex() != tt.rebasedTo {
				t.Fatalf("重定位后 CurrentIndex() = %d, 期望 %d", e.CurrentIndex(), tt.rebasedTo)
			}
			if got := e.Window()[0].OriginalIndex; got != 0 {
				t.Errorf("重定位后首张原始卡片 = %d, 期望 0（画面不变）", got)
			}
			host.paint()
			host.settle()

			// 连续后退跨越多个周期
			for i := 1; i <= 3*tt.cards; i++ {
				if i > 1 {
					if !e.Previous() {
						t.Fatalf("第 %d 次 Previous() 被拒绝", i)
					}
					host.paint()
					host.settle()
				}
				idx := e.CurrentIndex()
				if idx < 0 || idx%tt.step != 0 {
					t.Fatalf("第 %d 次后退后 CurrentIndex() = %d, 期望为 %d 的非负整数倍", i, idx, tt.step)
				}
				if got, want := e.Window()[0].OriginalIndex, mod(-tt.step*i, tt.cards); got != want {
					t.Fatalf("第 %d 次后退后首张原始卡片 = %d, 期望 %d", i, got, want)
				}
			}

			// 再向前移动，游标仍在 step 网格上
			for i := 0; i < 10; i++ {
				e.Next()
				host.settle()
				if idx := e.CurrentIndex(); idx%tt.step != 0 {
					t.Fatalf("Next() 后 CurrentIndex() = %d, 不是 %d 的整数倍", idx, tt.step)
				}
			}
		})
	}
}

// TestGoToPage 测试跳页与越界限制
func TestGoToPage(t *testing.T) {
	tests := []struct {
		name string
		page int
		want int
	}{
		{"第二页", 1, 3},
		{"最后一页", 2, 6},
		{"越界上限", 99, 6},
		{"负数页", -3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, host := newTestEngine(t, nil)
			e.GoToPage(tt.page)
			host.settle()
			if e.CurrentIndex() != tt.want {
				t.Errorf("CurrentIndex() = %d, 期望 %d", e.CurrentIndex(), tt.want)
			}
			if e.Remaining() < 0 {
				t.Errorf("Remaining() = %d", e.Remaining())
			}
		})
	}

	e, _ := newTestEngine(t, nil)
	if e.GoToPage(0) {
		t.Error("跳到当前页不应发起移动")
	}
	if e.IsMoving() {
		t.Error("跳到当前页不应进入 Moving")
	}
}

// TestOffset 测试平移量计算
func TestOffset(t *testing.T) {
	e, host := newTestEngine(t, func(c *Config) { c.Gap = 10 })
	// (600 - 10*5)/6 = 91.666..., itemWidth = 101.666...
	item := e.Geometry().ItemWidth
	e.Next()
	host.settle()
	if want := -3 * item; e.Offset() != want || host.offset != want {
		t.Errorf("Offset() = %v, host = %v, 期望 %v", e.Offset(), host.offset, want)
	}
}

// TestResizeDebounce 测试快速连续 resize 只生效一次
func TestResizeDebounce(t *testing.T) {
	e, host := newTestEngine(t, nil)
	e.Next()
	host.settle()
	measures := host.measures
	index := e.CurrentIndex()

	host.resizeTo(1200)
	host.advance(50 * time.Millisecond)
	host.resizeTo(1200)
	host.advance(100 * time.Millisecond)
	if host.measures != measures {
		t.Fatal("静默窗口结束前不应重新测量")
	}

	host.advance(50 * time.Millisecond)
	if host.measures != measures+1 {
		t.Errorf("测量次数 = %d, 期望 %d", host.measures-measures, 1)
	}
	if e.Geometry().CardWidth != 200 {
		t.Errorf("CardWidth = %v, 期望 200", e.Geometry().CardWidth)
	}
	if e.CurrentIndex() != index {
		t.Errorf("resize 改变了游标: %d -> %d", index, e.CurrentIndex())
	}
	last := host.translates[len(host.translates)-1]
	if last.Animate {
		t.Error("resize 之后的重新定位不应带动画")
	}
	if host.offset != -3*200 {
		t.Errorf("offset = %v, 期望 %v", host.offset, -3*200.0)
	}
	for _, c := range e.Cards() {
		if c.Width != 200 {
			t.Fatalf("卡片 %d 宽度 = %v, 期望 200", c.Position, c.Width)
		}
	}

	// 与单次 resize 的结果一致
	single, singleHost := newTestEngine(t, nil)
	single.Next()
	singleHost.settle()
	singleHost.resizeTo(1200)
	singleHost.advance(time.Second)
	if single.Geometry() != e.Geometry() || single.CurrentIndex() != e.CurrentIndex() {
		t.Errorf("两次 resize 结果 %+v 与单次 %+v 不一致", e.Geometry(), single.Geometry())
	}
}

// TestResizeWhileMoving 测试移动中 resize 视为移动完成
func TestResizeWhileMoving(t *testing.T) {
	e, host := newTestEngine(t, nil)
	e.Next()
	e.Resize()
	host.advance(time.Second)
	if e.IsMoving() {
		t.Error("立即定位打断过渡后应回到 Idle")
	}
	if e.CurrentIndex() != 3 {
		t.Errorf("CurrentIndex() = %d, 期望 3", e.CurrentIndex())
	}
	// 迟到的完成通知被忽略
	host.settle()
	if e.IsMoving() {
		t.Error("迟到的完成通知不应改变状态")
	}
}

// TestDestroy 测试销毁
func TestDestroy(t *testing.T) {
	e, host := newTestEngine(t, nil)
	e.Resize()
	measures := host.measures

	e.Destroy()
	e.Destroy()

	if !host.detached {
		t.Error("Destroy 应解除与宿主的关联")
	}
	if len(host.resizeSubs) != 0 {
		t.Error("Destroy 应取消 resize 订阅")
	}
	host.advance(time.Second)
	if host.measures != measures {
		t.Error("Destroy 应取消待执行的去抖任务")
	}
	if e.Next() {
		t.Error("销毁后 Next() 应被拒绝")
	}
}

// TestSettleAfterDestroy 测试销毁后迟到的过渡完成通知
func TestSettleAfterDestroy(t *testing.T) {
	e, host := newTestEngine(t, nil)
	e.Next()
	e.Destroy()
	host.settle()
	if e.IsMoving() {
		t.Error("完成通知应清除 Moving")
	}

	// 重定位之后销毁，绘制回调不再移动
	e2, host2 := newTestEngine(t, nil)
	e2.Previous()
	index := e2.CurrentIndex()
	e2.Destroy()
	host2.paint()
	if e2.CurrentIndex() != index {
		t.Error("销毁后绘制回调不应移动游标")
	}
}

// TestUpdateHook 测试状态刷新回调
func TestUpdateHook(t *testing.T) {
	calls := 0
	host := newFakeHost(600)
	e, err := New(host, testCards(9), DefaultConfig(), WithUpdateHook(func() { calls++ }))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if calls != 1 {
		t.Fatalf("构造后回调次数 = %d, 期望 1", calls)
	}
	e.Next()
	host.settle()
	if calls != 3 {
		t.Errorf("一次移动后回调次数 = %d, 期望 3（发起 + 完成）", calls)
	}
}

// TestCardsAt 测试视口相交卡片
func TestCardsAt(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	cards := e.CardsAt(-150)
	if len(cards) == 0 {
		t.Fatal("CardsAt 返回空")
	}
	if cards[0].Position != 1 {
		t.Errorf("第一张卡片位置 = %d, 期望 1", cards[0].Position)
	}
	lastPos := cards[len(cards)-1].Position
	if lastPos < 7 {
		t.Errorf("最后一张卡片位置 = %d, 期望 >= 7", lastPos)
	}
	if len(e.Window()) != 6 {
		t.Errorf("Window() 长度 = %d, 期望 6", len(e.Window()))
	}
}
