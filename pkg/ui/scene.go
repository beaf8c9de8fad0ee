// Package ui 提供桌面前端的场景管理、资源加载与显示设置
package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents one full-window screen (loading, home page, error page).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Resizable 可选接口：窗口逻辑尺寸变化时通知场景
type Resizable interface {
	Resize(width, height int)
}

// Leaver 可选接口：场景被切换掉或程序退出时释放资源
//
// 首页场景在这里销毁所有轨道引擎并解除视口订阅。
type Leaver interface {
	Leave()
}
