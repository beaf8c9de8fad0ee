package carousel

// Geometry 轨道几何参数
type Geometry struct {
	ViewportWidth float64
	CardWidth     float64
	Gap           float64
	ItemWidth     float64 // CardWidth + Gap
}

// MeasureGeometry 根据视口宽度和可见数计算卡片尺寸
//
// 可见的 visible 张卡片之间有 visible-1 个间距，恰好填满视口。
func MeasureGeometry(viewportWidth float64, visible int, gap float64) Geometry {
	if visible <= 0 {
		visible = 1
	}
	cardWidth := (viewportWidth - gap*float64(visible-1)) / float64(visible)
	if cardWidth < 0 {
		cardWidth = 0
	}
	return Geometry{
		ViewportWidth: viewportWidth,
		CardWidth:     cardWidth,
		Gap:           gap,
		ItemWidth:     cardWidth + gap,
	}
}

// OffsetFor 逻辑位置 index 对应的平移量
func (g Geometry) OffsetFor(index int) float64 {
	return -float64(index) * g.ItemWidth
}
