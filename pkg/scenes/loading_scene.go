package scenes

import (
	"context"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/popover"
	"github.com/decker502/flixrail/pkg/ui"
	"github.com/decker502/flixrail/pkg/utils"
)

// loadResult 后台加载的结果
type loadResult struct {
	home *content.Home
	err  error
}

// LoadingScene 启动时的加载场景
//
// 在后台 goroutine 中获取 hero 与 contents，结果通过 channel 回到 Update，
// 成功后切换到首页，失败后切换到错误场景。场景至少显示 LoadingMinDuration 秒。
type LoadingScene struct {
	env *Env
	log *zap.Logger

	results chan loadResult
	cancel  context.CancelFunc
	result  *loadResult

	elapsedTime float64 // Elapsed time since scene start
	logoAlpha   float64 // Logo fade-in progress (0.0 - 1.0)
	barPos      float64 // Indeterminate slider position (0.0 - 1.0)

	width, height float64

	logoFace *text.GoTextFace
	textFace *text.GoTextFace
}

// NewLoadingScene 创建加载场景并立即开始后台加载
func NewLoadingScene(env *Env) *LoadingScene {
	s := &LoadingScene{
		env:     env,
		log:     env.logger("loading"),
		results: make(chan loadResult, 1),
		width:   float64(env.Config.Window.Width),
		height:  float64(env.Config.Window.Height),
	}

	var err error
	if s.logoFace, err = env.Resources.LoadFont(ui.FontBold, config.LoadingLogoFontSize); err != nil {
		s.log.Warn("Failed to load logo font", zap.Error(err))
	}
	if s.textFace, err = env.Resources.LoadFont(ui.FontRegular, config.LoadingTextFontSize); err != nil {
		s.log.Warn("Failed to load text font", zap.Error(err))
	}

	ctx := env.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout := env.Config.Content.Timeout; timeout > 0 {
		ctx, s.cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, s.cancel = context.WithCancel(ctx)
	}

	s.log.Info("Loading home content", zap.String("source", env.Config.Content.Source))
	go func() {
		home, err := content.LoadHome(ctx, env.Content)
		s.results <- loadResult{home: home, err: err}
	}()
	return s
}

// Update updates the loading scene logic.
func (s *LoadingScene) Update(deltaTime float64) {
	s.elapsedTime += deltaTime

	s.updateLogoAnimation()
	s.barPos = math.Mod(s.barPos+deltaTime*config.LoadingIndeterminateSpeed, 1.0)

	if s.result == nil {
		select {
		case r := <-s.results:
			s.result = &r
		default:
		}
	}

	if s.result != nil && s.elapsedTime >= config.LoadingMinDuration {
		s.finish()
	}
}

// updateLogoAnimation updates the logo fade-in.
func (s *LoadingScene) updateLogoAnimation() {
	t := utils.Clamp01(s.elapsedTime / config.LoadingLogoAnimDuration)
	s.logoAlpha = utils.EaseOutCubic(t)
}

// finish 根据结果切换场景
func (s *LoadingScene) finish() {
	r := s.result
	s.result = nil
	if r.err != nil {
		s.log.Error("Home content failed to load", zap.Error(r.err))
		s.env.Scenes.SwitchTo(NewErrorScene(s.env, r.err))
		return
	}
	s.log.Info("Home content loaded",
		zap.Int("sections", len(r.home.Sections)),
		zap.Float64("seconds", s.elapsedTime))
	s.env.Scenes.SwitchTo(NewHomeScene(s.env, r.home))
}

// Resize 实现 ui.Resizable
func (s *LoadingScene) Resize(width, height int) {
	s.width, s.height = float64(width), float64(height)
}

// Leave 实现 ui.Leaver：取消尚未完成的加载
func (s *LoadingScene) Leave() {
	if s.cancel != nil {
		s.cancel()
	}
}

// Draw draws the loading scene.
func (s *LoadingScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	s.drawLogo(screen)
	s.drawProgressBar(screen)
	s.drawText(screen)
}

// drawLogo draws the fading logo centered above the progress bar.
func (s *LoadingScene) drawLogo(screen *ebiten.Image) {
	if s.logoFace == nil {
		return
	}
	const title = "FLIXRAIL"
	w, h := text.Measure(title, s.logoFace, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((s.width-w)/2, s.height/2-h)
	op.ColorScale.ScaleWithColor(colorAccent)
	op.ColorScale.ScaleAlpha(float32(s.logoAlpha))
	text.Draw(screen, title, s.logoFace, op)
}

// barRect 进度条区域
func (s *LoadingScene) barRect() popover.Rect {
	return popover.Rect{
		X: (s.width - config.LoadingBarWidth) / 2,
		Y: s.height/2 + config.LoadingBarOffsetY,
		W: config.LoadingBarWidth,
		H: config.LoadingBarHeight,
	}
}

// drawProgressBar draws an indeterminate slider over the bar track.
func (s *LoadingScene) drawProgressBar(screen *ebiten.Image) {
	bar := s.barRect()
	fillRect(screen, bar, colorSurfaceHi)

	sliderW := bar.W * 0.3
	x := bar.X + (bar.W+sliderW)*utils.EaseInOutCSS(s.barPos) - sliderW
	left := math.Max(x, bar.X)
	right := math.Min(x+sliderW, bar.Right())
	if right > left {
		fillRect(screen, popover.Rect{X: left, Y: bar.Y, W: right - left, H: bar.H}, colorAccent)
	}
}

// drawText draws the loading message.
func (s *LoadingScene) drawText(screen *ebiten.Image) {
	message := "Loading…"
	var textColor color.Color = colorTextDim
	if s.result != nil {
		message = "Ready"
		textColor = colorText
	}
	bar := s.barRect()
	w := textWidth(message, s.textFace)
	drawText(screen, message, s.textFace, (s.width-w)/2, bar.Y+config.LoadingTextOffsetY, textColor)
}
