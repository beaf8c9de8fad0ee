package config

// Loading Scene 配置常量

const (
	// LoadingMinDuration 加载场景最短显示时长（秒），避免闪烁
	LoadingMinDuration float64 = 0.6

	// LoadingLogoFontSize Logo 字号
	LoadingLogoFontSize float64 = 56

	// LoadingLogoAnimDuration Logo 淡入动画时长（秒）
	LoadingLogoAnimDuration float64 = 0.8

	// LoadingBarWidth 进度条宽度
	LoadingBarWidth float64 = 320

	// LoadingBarHeight 进度条高度
	LoadingBarHeight float64 = 4

	// LoadingBarOffsetY 进度条相对窗口中心的 Y 偏移
	LoadingBarOffsetY float64 = 60

	// LoadingTextOffsetY 文字提示相对进度条的 Y 偏移
	LoadingTextOffsetY float64 = 28

	// LoadingTextFontSize 加载文字字体大小
	LoadingTextFontSize float64 = 16

	// LoadingIndeterminateSpeed 不确定进度时滑块每秒移动的比例
	LoadingIndeterminateSpeed float64 = 0.8
)
