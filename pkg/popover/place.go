// Package popover 提供悬浮弹层的定位与开合控制
package popover

// Rect 轴对齐矩形（逻辑像素或终端单元格）
type Rect struct {
	X, Y, W, H float64
}

// Right 右边界
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom 下边界
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains 点是否在矩形内（含左上边界，不含右下边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Size 弹层尺寸
type Size struct {
	W, H float64
}

// Place 计算弹层位置
//
// 默认放在锚点下方并与锚点右对齐；越过视口左边界时改为左对齐，
// 越过视口下边界时翻到锚点上方；最后夹紧到视口内（保留 margin）。
// 弹层比视口还大时贴左/上边。
func Place(anchor Rect, size Size, viewport Rect, margin float64) Rect {
	r := Rect{W: size.W, H: size.H}

	r.X = anchor.Right() - size.W
	if r.X < viewport.X+margin {
		r.X = anchor.X
	}

	r.Y = anchor.Bottom() + margin
	if r.Bottom() > viewport.Bottom()-margin {
		if above := anchor.Y - margin - size.H; above >= viewport.Y+margin {
			r.Y = above
		}
	}

	r.X = clamp(r.X, viewport.X+margin, viewport.Right()-margin-size.W)
	r.Y = clamp(r.Y, viewport.Y+margin, viewport.Bottom()-margin-size.H)
	return r
}

// clamp 夹紧到 [lo, hi]；hi < lo 时取 lo
func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
