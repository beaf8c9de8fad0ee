package carousel

import "fmt"

// Pagination 分页状态
type Pagination struct {
	LogicalIndex int    // currentIndex mod cardCount
	Current      int    // 当前页（从 1 开始）
	Total        int    // 总页数 ceil(cardCount/step)
	Label        string // "{Current} / {Total}"
	Active       int    // 激活的页码指示器下标（Current-1）
}

// Markers 返回 Total 个指示器的激活状态，恰好一个为 true
//
// Active 超出范围时激活最后一个指示器。
func (p Pagination) Markers() []bool {
	if p.Total <= 0 {
		return nil
	}
	markers := make([]bool, p.Total)
	active := p.Active
	if active < 0 {
		active = 0
	}
	if active >= p.Total {
		active = p.Total - 1
	}
	markers[active] = true
	return markers
}

// Controls 方向按钮禁用状态
type Controls struct {
	PrevDisabled bool
	NextDisabled bool
}

// TotalPages ceil(cardCount/step)
func TotalPages(cardCount, step int) int {
	if step <= 0 || cardCount <= 0 {
		return 0
	}
	return (cardCount + step - 1) / step
}

// ComputePagination 计算 currentIndex 对应的分页
func ComputePagination(currentIndex, cardCount, step int) Pagination {
	total := TotalPages(cardCount, step)
	if total == 0 {
		return Pagination{Label: "0 / 0"}
	}
	logical := mod(currentIndex, cardCount)
	current := logical/step + 1
	return Pagination{
		LogicalIndex: logical,
		Current:      current,
		Total:        total,
		Label:        fmt.Sprintf("%d / %d", current, total),
		Active:       current - 1,
	}
}

// ComputeControls 计算方向按钮禁用状态
//
// 无限模式下两个按钮始终可用。
func ComputeControls(currentIndex, cardCount, visible int, infinite bool) Controls {
	if infinite {
		return Controls{}
	}
	return Controls{
		PrevDisabled: currentIndex <= 0,
		NextDisabled: currentIndex >= cardCount-visible,
	}
}

// mod 非负取模
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
