package utils

import "math"

// Easing Functions (缓动函数)
//
// 所有函数接受一个进度值 t ∈ [0, 1]，返回缓动后的值（端点处为 0 和 1）。
// 轨道平移使用 CSS 同名缓动（cubic-bezier 曲线），通过 EasingByName 按名称查找。

// EasingFunc 缓动函数
type EasingFunc func(t float64) float64

// EaseLinear 线性缓动（无缓动）
func EaseLinear(t float64) float64 {
	return t
}

// EaseOutCubic 三次方缓出
// 特点：开始快，结束慢（弹层淡入）
// 公式：f(t) = 1 - (1-t)³
func EaseOutCubic(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// EaseInOutCubic 三次方缓入缓出
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// CubicBezier 返回 CSS cubic-bezier(x1, y1, x2, y2) 缓动函数
//
// 先用牛顿迭代从 x 反求曲线参数，不收敛时退回二分法。
func CubicBezier(x1, y1, x2, y2 float64) EasingFunc {
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	const epsilon = 1e-6
	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			dx := sampleX(s) - x
			if math.Abs(dx) < epsilon {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < epsilon {
				break
			}
			s -= dx / d
		}

		lo, hi := 0.0, 1.0
		s = x
		for lo < hi {
			v := sampleX(s)
			if math.Abs(v-x) < epsilon {
				return s
			}
			if x > v {
				lo = s
			} else {
				hi = s
			}
			next := (lo + hi) / 2
			if next == s {
				break
			}
			s = next
		}
		return s
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return sampleY(solve(t))
	}
}

// CSS 预定义缓动
var (
	EaseCSS       = CubicBezier(0.25, 0.1, 0.25, 1)
	EaseInCSS     = CubicBezier(0.42, 0, 1, 1)
	EaseOutCSS    = CubicBezier(0, 0, 0.58, 1)
	EaseInOutCSS  = CubicBezier(0.42, 0, 0.58, 1)
	cssEasingsMap = map[string]EasingFunc{
		"ease":        EaseCSS,
		"linear":      EaseLinear,
		"ease-in":     EaseInCSS,
		"ease-out":    EaseOutCSS,
		"ease-in-out": EaseInOutCSS,
	}
)

// EasingByName 按 CSS 名称查找缓动函数
//
// 未知名称返回 ease 与 false。
func EasingByName(name string) (EasingFunc, bool) {
	if fn, ok := cssEasingsMap[name]; ok {
		return fn, true
	}
	return EaseCSS, false
}

// Lerp 线性插值
// t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 把进度夹紧到 [0, 1]
func Clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
