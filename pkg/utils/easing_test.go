package utils

import (
	"math"
	"testing"
)

// TestEaseLinear 测试线性缓动函数
func TestEaseLinear(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"中点", 0.5, 0.5},
		{"终点", 1.0, 1.0},
		{"四分之一", 0.25, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseLinear(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseLinear(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestEaseOutCubic 测试三次方缓出函数
func TestEaseOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"终点", 1.0, 1.0},
		{"中点", 0.5, 0.875}, // 1 - (1-0.5)^3 = 1 - 0.125 = 0.875
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}

	// 验证"开始快，结束慢"的特性
	t.Run("开始快于线性", func(t *testing.T) {
		// 在前半段（p < 0.5），缓出函数应该比线性快
		for p := 0.1; p < 0.5; p += 0.1 {
			eased := EaseOutCubic(p)
			linear := EaseLinear(p)
			if eased <= linear {
				t.Errorf("EaseOutCubic(%v) = %v 应该大于线性值 %v（开始快）", p, eased, linear)
			}
		}
	})

	t.Run("整体快于线性", func(t *testing.T) {
		// EaseOut 的"结束慢"指的是速度减缓，而非位置落后
		// 由于前半段加速，整个过程中位置都会领先或等于线性
		for p := 0.0; p <= 1.0; p += 0.1 {
			eased := EaseOutCubic(p)
			linear := EaseLinear(p)
			// 允许微小的浮点误差
			if eased < linear-0.001 {
				t.Errorf("EaseOutCubic(%v) = %v 不应该落后于线性值 %v", p, eased, linear)
			}
		}
	})
}

// TestEaseInOutCubic 测试三次方缓入缓出函数
func TestEaseInOutCubic(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"起点", 0.0, 0.0},
		{"四分之一", 0.25, 0.0625},
		{"中点", 0.5, 0.5},
		{"四分之三", 0.75, 0.9375},
		{"终点", 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := EaseInOutCubic(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("EaseInOutCubic(%v) = %v, 期望 %v", tt.input, result, tt.expected)
			}
		})
	}
}

// TestLerp 测试线性插值函数
func TestLerp(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		t        float64
		expected float64
	}{
		{"起点", 0.0, 100.0, 0.0, 0.0},
		{"中点", 0.0, 100.0, 0.5, 50.0},
		{"终点", 0.0, 100.0, 1.0, 100.0},
		{"四分之一", 0.0, 100.0, 0.25, 25.0},
		{"负数范围", -50.0, 50.0, 0.5, 0.0},
		{"逆向范围", 100.0, 0.0, 0.5, 50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Lerp(tt.a, tt.b, tt.t)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Lerp(%v, %v, %v) = %v, 期望 %v", tt.a, tt.b, tt.t, result, tt.expected)
			}
		})
	}
}

// TestCubicBezier 测试 cubic-bezier 曲线
func TestCubicBezier(t *testing.T) {
	// cubic-bezier(0, 0, 1, 1) 等价于线性
	linear := CubicBezier(0, 0, 1, 1)
	for _, x := range []float64{0, 0.1, 0.33, 0.5, 0.9, 1} {
		if got := linear(x); math.Abs(got-x) > 0.001 {
			t.Errorf("linear bezier(%v) = %v, 期望 %v", x, got, x)
		}
	}

	// ease-in-out 关于中点对称
	for _, x := range []float64{0.1, 0.2, 0.3, 0.4} {
		a := EaseInOutCSS(x)
		b := EaseInOutCSS(1 - x)
		if math.Abs(a+b-1) > 0.001 {
			t.Errorf("ease-in-out 不对称: f(%v)=%v, f(%v)=%v", x, a, 1-x, b)
		}
	}

	// 已知参考值（浏览器实现）
	tests := []struct {
		name string
		fn   EasingFunc
		x    float64
		want float64
	}{
		{"ease 中点", EaseCSS, 0.5, 0.8024},
		{"ease-in 中点", EaseInCSS, 0.5, 0.3153},
		{"ease-out 中点", EaseOutCSS, 0.5, 0.6847},
		{"ease-in-out 中点", EaseInOutCSS, 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.x); math.Abs(got-tt.want) > 0.002 {
				t.Errorf("f(%v) = %v, 期望 %v", tt.x, got, tt.want)
			}
		})
	}
}

// TestCubicBezierMonotonic 测试 CSS 缓动单调且端点固定
func TestCubicBezierMonotonic(t *testing.T) {
	for name, fn := range cssEasingsMap {
		if fn(0) != 0 || fn(1) != 1 || fn(-1) != 0 || fn(2) != 1 {
			t.Errorf("%s 端点错误", name)
		}
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := fn(float64(i) / 100)
			if v < prev-1e-9 {
				t.Errorf("%s 在 %v 处不单调: %v < %v", name, float64(i)/100, v, prev)
				break
			}
			prev = v
		}
	}
}

// TestEasingByName 测试按名称查找
func TestEasingByName(t *testing.T) {
	for _, name := range []string{"ease", "linear", "ease-in", "ease-out", "ease-in-out"} {
		if _, ok := EasingByName(name); !ok {
			t.Errorf("EasingByName(%q) 应找到缓动函数", name)
		}
	}
	fn, ok := EasingByName("bounce")
	if ok {
		t.Error("未知名称应返回 false")
	}
	if math.Abs(fn(0.5)-EaseCSS(0.5)) > 1e-9 {
		t.Error("未知名称应退回 ease")
	}
}

// TestRailTranslation 测试缓动与插值结合：轨道从 0 平移到 -600
func TestRailTranslation(t *testing.T) {
	from, to := 0.0, -600.0
	ease, _ := EasingByName("ease")
	prev := from
	for i := 0; i <= 10; i++ {
		x := Lerp(from, to, ease(Clamp01(float64(i)/10)))
		if x > prev+1e-9 {
			t.Errorf("第 %d 帧回退: %v > %v", i, x, prev)
		}
		if x < to || x > from {
			t.Errorf("第 %d 帧越界: %v", i, x)
		}
		prev = x
	}
	if prev != to {
		t.Errorf("最后一帧 = %v, 期望 %v", prev, to)
	}
}
