package carousel

import "time"

// Transition 一次平移的过渡参数
type Transition struct {
	Animate  bool          // false 表示立即跳转，不产生过渡
	Duration time.Duration // 过渡时长
	Easing   string        // 缓动函数名
}

// Host 引擎依赖的宿主能力（视口 + 渲染表面）
//
// 引擎只依赖此接口，不依赖具体的渲染表面，因此可以无界面测试。
// 所有回调都必须在宿主的事件循环 goroutine 上执行。
type Host interface {
	// MeasureWidth 返回轨道视口当前宽度
	MeasureWidth() float64

	// ScheduleAfterPaint 在下一次绘制之后执行 fn
	ScheduleAfterPaint(fn func())

	// OnViewportResize 订阅视口尺寸变化，返回取消订阅函数
	OnViewportResize(fn func()) (unsubscribe func())

	// OnTransitionSettled 注册过渡完成回调
	//
	// 每次带动画的 Translate 自然完成时调用一次；被立即 Translate
	// 打断的过渡不会触发回调。
	OnTransitionSettled(fn func())

	// Translate 将整条轨道平移到 offset
	Translate(offset float64, tr Transition)

	// SetCardWidth 为所有物化卡片设置宽度
	SetCardWidth(width float64)

	// After 在 d 之后执行 fn，返回取消函数
	After(d time.Duration, fn func()) (cancel func())
}

// Detacher 可选接口：引擎销毁时宿主解除与引擎的关联
type Detacher interface {
	Detach()
}
