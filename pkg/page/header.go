package page

// DefaultHeaderThreshold 页头变为实色的滚动距离
const DefaultHeaderThreshold = 80.0

// HeaderState 页头样式
type HeaderState struct {
	// Opacity 背景不透明度 [0, 1]，随滚动线性增加
	Opacity float64
	// Solid 滚动超过阈值后页头为实色
	Solid bool
}

// HeaderStyle 根据页面垂直滚动距离计算页头样式
func HeaderStyle(scrollY, threshold float64) HeaderState {
	if threshold <= 0 {
		threshold = DefaultHeaderThreshold
	}
	if scrollY <= 0 {
		return HeaderState{}
	}
	if scrollY >= threshold {
		return HeaderState{Opacity: 1, Solid: true}
	}
	return HeaderState{Opacity: scrollY / threshold}
}
