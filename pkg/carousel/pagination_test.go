package carousel

import "testing"

// TestComputePagination 测试分页计算
func TestComputePagination(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		count     int
		step      int
		wantLabel string
		wantPage  int
	}{
		{"起点", 0, 9, 3, "1 / 3", 1},
		{"第二页", 3, 9, 3, "2 / 3", 2},
		{"回绕", 9, 9, 3, "1 / 3", 1},
		{"非整除", 9, 10, 3, "4 / 4", 4},
		{"非整除回绕", 12, 10, 3, "1 / 4", 1},
		{"负游标", -3, 9, 3, "3 / 3", 3},
		{"页内偏移", 4, 9, 3, "2 / 3", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ComputePagination(tt.index, tt.count, tt.step)
			if p.Label != tt.wantLabel || p.Current != tt.wantPage || p.Active != tt.wantPage-1 {
				t.Errorf("ComputePagination(%d,%d,%d) = %+v, 期望 %s", tt.index, tt.count, tt.step, p, tt.wantLabel)
			}
		})
	}
}

// TestTotalPages 测试总页数
func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, step, want int
	}{
		{9, 3, 3},
		{10, 3, 4},
		{1, 6, 1},
		{0, 3, 0},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.step); got != tt.want {
			t.Errorf("TotalPages(%d,%d) = %d, 期望 %d", tt.count, tt.step, got, tt.want)
		}
	}
}

// TestMarkers 测试页码指示器恰好一个激活
func TestMarkers(t *testing.T) {
	tests := []struct {
		name   string
		p      Pagination
		active int
	}{
		{"正常", Pagination{Total: 3, Active: 1}, 1},
		{"越界上限", Pagination{Total: 3, Active: 7}, 2},
		{"越界下限", Pagination{Total: 3, Active: -1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tt.p.Markers()
			if len(m) != tt.p.Total {
				t.Fatalf("len = %d, 期望 %d", len(m), tt.p.Total)
			}
			for i, on := range m {
				if on != (i == tt.active) {
					t.Errorf("markers = %v, 期望激活 %d", m, tt.active)
					break
				}
			}
		})
	}
}

// TestComputeControls 测试按钮禁用计算
func TestComputeControls(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		infinite bool
		want     Controls
	}{
		{"无限模式起点", 0, true, Controls{}},
		{"有限模式起点", 0, false, Controls{PrevDisabled: true}},
		{"有限模式中间", 2, false, Controls{}},
		{"有限模式边界", 6, false, Controls{NextDisabled: true}},
		{"有限模式越界", 8, false, Controls{NextDisabled: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeControls(tt.index, 10, 4, tt.infinite); got != tt.want {
				t.Errorf("ComputeControls(%d) = %+v, 期望 %+v", tt.index, got, tt.want)
			}
		})
	}
}

// TestMeasureGeometry 测试几何计算
func TestMeasureGeometry(t *testing.T) {
	g := MeasureGeometry(620, 6, 4)
	if g.CardWidth != 100 || g.ItemWidth != 104 {
		t.Errorf("MeasureGeometry(620,6,4) = %+v", g)
	}
	if g := MeasureGeometry(10, 6, 8); g.CardWidth != 0 {
		t.Errorf("过窄视口 CardWidth = %v, 期望 0", g.CardWidth)
	}
	if g.OffsetFor(3) != -312 {
		t.Errorf("OffsetFor(3) = %v, 期望 -312", g.OffsetFor(3))
	}
}
