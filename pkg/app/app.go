// Package app 提供桌面应用的核心包装器
//
// 该包把内容源、资源、设置与场景的装配从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/embedded"
	"github.com/decker502/flixrail/pkg/likes"
	"github.com/decker502/flixrail/pkg/scenes"
	"github.com/decker502/flixrail/pkg/ui"
	"github.com/decker502/flixrail/pkg/utils"
)

// Options 定义应用启动选项（命令行覆盖）
type Options struct {
	// Debug 在屏幕上绘制诊断信息
	Debug bool
	// Fullscreen 以全屏启动，优先于保存的设置
	Fullscreen bool
}

// App 是桌面应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	cfg          *config.Config
	log          *zap.Logger
	env          *scenes.Env
	sceneManager *ui.SceneManager
	settings     *ui.SettingsManager
	cancel       context.CancelFunc
	closed       bool

	fullscreen               bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化应用
//
// 调用此函数前，应先调用 embedded.Init() 注入内置内容；
// 未注入时只能使用配置中的外部内容源。
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("app")

	builtin, err := embedded.Content()
	if err != nil {
		log.Debug("Built-in content unavailable", zap.Error(err))
		builtin = nil
	}
	src, err := content.Open(cfg.Content.Source, builtin, cfg.Content.Timeout, log.Named("content"))
	if err != nil {
		return nil, fmt.Errorf("内容源初始化失败: %w", err)
	}
	cached := content.NewCached(src, log.Named("content"))

	ctx, cancel := context.WithCancel(ctx)

	// 设置存储失败时以降级模式运行（只保存在内存中）
	var settings *ui.SettingsManager
	if cfg.Window.RememberSettings {
		if err := utils.EnsureStorageDir(); err != nil {
			log.Warn("Storage directory unavailable", zap.Error(err))
		}
		storage, err := ui.OpenStorage(config.AppName)
		if err != nil {
			log.Warn("Settings will not be persisted", zap.Error(err))
		}
		settings = ui.NewSettingsManager(storage, log.Named("settings"))
	} else {
		settings = ui.NewSettingsManager(nil, log.Named("settings"))
	}

	sceneManager := ui.NewSceneManager(log.Named("scenes"))
	env := &scenes.Env{
		Ctx:       ctx,
		Config:    cfg,
		Log:       log,
		Scenes:    sceneManager,
		Resources: ui.NewResourceManager(ctx, cached, log.Named("resources")),
		Settings:  settings,
		Content:   cached,
		Likes:     likes.NewStore(nil),
		Debug:     opts.Debug,
	}

	a := &App{
		cfg:          cfg,
		log:          log,
		env:          env,
		sceneManager: sceneManager,
		settings:     settings,
		cancel:       cancel,
		fullscreen:   opts.Fullscreen || cfg.Window.Fullscreen || settings.GetSettings().Fullscreen,
	}
	// 移动端总是全屏
	if utils.IsMobile() {
		a.fullscreen = true
	}

	sceneManager.SwitchTo(scenes.NewLoadingScene(env))
	log.Debug("Application initialized",
		zap.String("source", cfg.Content.Source),
		zap.Bool("persistent settings", settings.Persistent()))
	return a, nil
}

// ConfigureWindow 设置桌面窗口属性，在 ebiten.RunGame 之前调用
func (a *App) ConfigureWindow() {
	ebiten.SetWindowTitle(a.cfg.Window.Title)
	ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetFullscreen(a.fullscreen)
}

// Update 更新应用逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.Close()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(a.cfg.Window.Width, a.cfg.Window.Height)
			a.log.Debug("Delayed SetWindowSize", zap.Int("width", a.cfg.Window.Width), zap.Int("height", a.cfg.Window.Height))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if !utils.IsMobile() && inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.sceneManager.Update(1.0 / float64(ebiten.TPS()))
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		// 退出全屏
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		// 延迟几帧后设置窗口大小，让窗口管理器有时间处理
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
		a.fullscreen = false
		a.log.Debug("Exit fullscreen, will reset window size in 3 frames")
	} else {
		ebiten.SetFullscreen(true)
		a.fullscreen = true
	}
	a.settings.SetFullscreen(a.fullscreen)
	if err := a.settings.Save(); err != nil {
		a.log.Warn("Unable to save settings", zap.Error(err))
	}
}

// Draw 绘制画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制缩放时的 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回逻辑屏幕尺寸
// 页面随窗口自适应：逻辑尺寸等于窗口尺寸，并转发给场景（轨道按视口宽度重新分页）
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	a.sceneManager.Resize(w, h)
	return w, h
}

// Close 释放场景并取消进行中的网络请求，可重复调用
func (a *App) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.sceneManager.Close()
	a.cancel()
	a.log.Debug("Application closed")
}

// Env 返回场景共享的依赖
func (a *App) Env() *scenes.Env {
	return a.env
}
