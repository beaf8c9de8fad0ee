// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// GetPointerPosition 获取当前指针位置（触摸或鼠标）
// 优先返回触摸位置，如果没有触摸则返回鼠标位置
func GetPointerPosition() (int, int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		return ebiten.TouchPosition(touchIDs[0])
	}
	return ebiten.CursorPosition()
}

// GetPointerState 获取指针的完整状态
// 返回：是否按下、X坐标、Y坐标
func GetPointerState() (pressed bool, x, y int) {
	touchIDs := ebiten.AppendTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y = ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	x, y = ebiten.CursorPosition()
	pressed = ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	return pressed, x, y
}

// IsPointerJustPressed 检查是否刚刚按下指针（触摸或鼠标）
// 返回是否按下以及按下位置
func IsPointerJustPressed() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}
	return false, 0, 0
}

// WheelDelta 本帧的滚轮偏移（像素，向下滚动为正）
func WheelDelta(pixelsPerNotch float64) (dx, dy float64) {
	x, y := ebiten.Wheel()
	return -x * pixelsPerNotch, -y * pixelsPerNotch
}

// ============================================================================
// 滑动手势 - 用于在轨道上左右滑动翻页
// ============================================================================

// Gesture 一次按下-释放识别出的手势
type Gesture int

const (
	// GestureNone 没有完成的手势
	GestureNone Gesture = iota
	// GestureTap 点击（移动距离小于阈值）
	GestureTap
	// GestureSwipeLeft 向左滑动（查看下一页）
	GestureSwipeLeft
	// GestureSwipeRight 向右滑动（查看上一页）
	GestureSwipeRight
)

// DefaultSwipeThreshold 识别为滑动的最小水平距离（像素）
const DefaultSwipeThreshold = 40

// SwipeTracker 跟踪指针按下到释放之间的移动
//
// 每帧调用一次 Update（或在测试中直接调用 Feed）。
type SwipeTracker struct {
	Threshold int

	pressed        bool
	startX, startY int
	curX, curY     int
}

// NewSwipeTracker 创建滑动跟踪器
func NewSwipeTracker() *SwipeTracker {
	return &SwipeTracker{Threshold: DefaultSwipeThreshold}
}

// Update 读取本帧的指针状态
func (s *SwipeTracker) Update() Gesture {
	pressed, x, y := GetPointerState()
	return s.Feed(pressed, x, y)
}

// Feed 输入一帧的指针状态，释放时返回识别出的手势
func (s *SwipeTracker) Feed(pressed bool, x, y int) Gesture {
	switch {
	case pressed && !s.pressed:
		s.pressed = true
		s.startX, s.startY = x, y
		s.curX, s.curY = x, y
	case pressed:
		s.curX, s.curY = x, y
	case s.pressed:
		s.pressed = false
		return s.classify()
	}
	return GestureNone
}

// Active 是否处于按下状态
func (s *SwipeTracker) Active() bool {
	return s.pressed
}

// Start 本次按下的起点
func (s *SwipeTracker) Start() (x, y int) {
	return s.startX, s.startY
}

// Distance 从起点到当前位置的距离
func (s *SwipeTracker) Distance() (dx, dy int) {
	return s.curX - s.startX, s.curY - s.startY
}

// Reset 丢弃进行中的跟踪
func (s *SwipeTracker) Reset() {
	*s = SwipeTracker{Threshold: s.Threshold}
}

func (s *SwipeTracker) classify() Gesture {
	dx, dy := s.Distance()
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultSwipeThreshold
	}
	adx, ady := abs(dx), abs(dy)
	switch {
	case adx >= threshold && adx > ady:
		if dx < 0 {
			return GestureSwipeLeft
		}
		return GestureSwipeRight
	case adx < threshold && ady < threshold:
		return GestureTap
	}
	return GestureNone
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
