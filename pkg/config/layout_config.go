package config

// 布局配置常量
// 本文件定义了首页各区块的布局参数。所有尺寸以逻辑像素为单位，
// 最终乘以用户设置中的 UI 缩放系数。

// Header 顶部导航栏
const (
	// HeaderHeight 导航栏高度
	HeaderHeight = 64.0

	// HeaderLogoFontSize Logo 字号
	HeaderLogoFontSize = 28.0

	// HeaderNavFontSize 导航项字号
	HeaderNavFontSize = 15.0

	// HeaderNavGap 导航项之间的水平间距
	HeaderNavGap = 22.0

	// HeaderIconSize 右侧图标（通知、头像）的点击区域边长
	HeaderIconSize = 32.0

	// HeaderIconGap 右侧图标之间的间距
	HeaderIconGap = 16.0
)

// Page 页面整体
const (
	// PagePaddingX 页面左右留白，轨道视口宽度 = 窗口宽度 - 2*PagePaddingX
	PagePaddingX = 48.0

	// PageBottomPadding 最后一条轨道下方的留白
	PageBottomPadding = 48.0

	// WheelPixelsPerNotch 鼠标滚轮每格滚动的像素数
	WheelPixelsPerNotch = 60.0

	// KeyScrollStep 上下方向键切换焦点轨道时的滚动量下限
	KeyScrollStep = 120.0
)

// Hero 主视觉
const (
	// HeroHeightRatio 主视觉高度相对窗口宽度的比例
	HeroHeightRatio = 0.45

	// HeroMaxHeight 主视觉最大高度
	HeroMaxHeight = 560.0

	// HeroMinHeight 主视觉最小高度
	HeroMinHeight = 260.0

	// HeroTextWidthRatio 标题与简介所占宽度比例
	HeroTextWidthRatio = 0.42

	// HeroTitleFontSize 标题字号
	HeroTitleFontSize = 44.0

	// HeroBodyFontSize 简介字号
	HeroBodyFontSize = 17.0

	// HeroDescriptionLines 简介最多显示的行数
	HeroDescriptionLines = 3

	// HeroButtonWidth / HeroButtonHeight 播放、更多信息按钮尺寸
	HeroButtonWidth  = 132.0
	HeroButtonHeight = 42.0
)

// Rail 内容轨道
const (
	// RailTitleHeight 轨道标题行高度（标题 + 分页指示）
	RailTitleHeight = 36.0

	// RailTitleFontSize 轨道标题字号
	RailTitleFontSize = 20.0

	// RailGapY 相邻轨道之间的垂直间距
	RailGapY = 28.0

	// CardAspect 卡片高宽比（16:9 横版海报）
	CardAspect = 9.0 / 16.0

	// RankedCardAspect 排行榜卡片高宽比（竖版海报）
	RankedCardAspect = 4.0 / 3.0

	// CardInfoHeight 海报下方标题与点赞行的高度
	CardInfoHeight = 40.0

	// CardFontSize 卡片文字字号
	CardFontSize = 13.0

	// RankFontSize 排行榜序号字号
	RankFontSize = 64.0

	// ArrowWidth 左右箭头按钮宽度（覆盖在视口两侧留白上）
	ArrowWidth = 40.0

	// DotSize / DotGap 分页指示点
	DotSize = 14.0
	DotGap  = 3.0
	// DotHeight 指示条高度
	DotHeight = 3.0
)

// Popover 弹出层
const (
	// PopoverWidth 菜单弹出层宽度
	PopoverWidth = 240.0

	// PopoverRowHeight 菜单每行高度
	PopoverRowHeight = 30.0

	// CardPopoverWidth 卡片详情弹出层宽度
	CardPopoverWidth = 300.0

	// CardPopoverHeight 卡片详情弹出层高度
	CardPopoverHeight = 120.0
)

// RailViewportWidth 根据窗口宽度计算轨道视口宽度
func RailViewportWidth(windowWidth float64) float64 {
	w := windowWidth - 2*PagePaddingX
	if w < 0 {
		return 0
	}
	return w
}

// HeroHeight 根据窗口宽度计算主视觉高度
func HeroHeight(windowWidth float64) float64 {
	h := windowWidth * HeroHeightRatio
	if h > HeroMaxHeight {
		h = HeroMaxHeight
	}
	if h < HeroMinHeight {
		h = HeroMinHeight
	}
	return h
}

// CardHeight 卡片总高度（海报 + 信息行）
func CardHeight(cardWidth float64, ranked bool) float64 {
	aspect := CardAspect
	if ranked {
		aspect = RankedCardAspect
	}
	return cardWidth*aspect + CardInfoHeight
}
