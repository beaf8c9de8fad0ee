package page

import "fmt"

// Breakpoint 视口宽度达到 MinWidth 时使用的 visible/step
type Breakpoint struct {
	MinWidth float64 `yaml:"min_width"`
	Visible  int     `yaml:"visible" validate:"gte=1"`
	Step     int     `yaml:"step" validate:"gte=1"`
}

// Breakpoints 固定断点表
type Breakpoints []Breakpoint

// DefaultBreakpoints 默认断点
var DefaultBreakpoints = Breakpoints{
	{MinWidth: 0, Visible: 2, Step: 2},
	{MinWidth: 500, Visible: 3, Step: 3},
	{MinWidth: 800, Visible: 4, Step: 4},
	{MinWidth: 1100, Visible: 5, Step: 5},
	{MinWidth: 1400, Visible: 6, Step: 3},
}

// For 返回宽度对应的 visible/step
//
// 选择 MinWidth 不超过 width 的最大断点；比所有断点都窄时使用最小断点；
// 表为空时返回 0, 0（交给引擎使用默认值）。
func (b Breakpoints) For(width float64) (visible, step int) {
	if len(b) == 0 {
		return 0, 0
	}
	best, smallest := -1, 0
	for i, bp := range b {
		if bp.MinWidth < b[smallest].MinWidth {
			smallest = i
		}
		if bp.MinWidth <= width && (best < 0 || bp.MinWidth > b[best].MinWidth) {
			best = i
		}
	}
	if best < 0 {
		best = smallest
	}
	return b[best].Visible, b[best].Step
}

// Validate 检查断点表
func (b Breakpoints) Validate() error {
	seen := make(map[float64]bool, len(b))
	for _, bp := range b {
		if bp.Visible < 1 || bp.Step < 1 || bp.MinWidth < 0 {
			return fmt.Errorf("invalid breakpoint %+v", bp)
		}
		if seen[bp.MinWidth] {
			return fmt.Errorf("duplicate breakpoint min_width %v", bp.MinWidth)
		}
		seen[bp.MinWidth] = true
	}
	return nil
}
