package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
	"github.com/decker502/flixrail/pkg/ui"
	"github.com/decker502/flixrail/pkg/utils"
)

// ErrorScene 内容加载失败时显示的错误横幅
//
// 不会自动重试：用户点击 Reload 按钮（或按 R / Enter）后重新进入加载场景。
type ErrorScene struct {
	env    *Env
	log    *zap.Logger
	banner page.BannerModel

	width, height float64
	hoverButton   bool

	titleFace *text.GoTextFace
	bodyFace  *text.GoTextFace
}

// NewErrorScene 创建错误场景
func NewErrorScene(env *Env, err error) *ErrorScene {
	s := &ErrorScene{
		env:    env,
		log:    env.logger("error"),
		banner: page.Banner(err),
		width:  float64(env.Config.Window.Width),
		height: float64(env.Config.Window.Height),
	}
	s.titleFace = env.Resources.Font(ui.FontBold, 28)
	s.bodyFace = env.Resources.Font(ui.FontRegular, 15)
	return s
}

// Banner 当前显示的横幅
func (s *ErrorScene) Banner() page.BannerModel {
	return s.banner
}

// Update 处理重新加载
func (s *ErrorScene) Update(deltaTime float64) {
	mx, my := utils.GetPointerPosition()
	s.hoverButton = s.buttonRect().Contains(float64(mx), float64(my))
	if s.hoverButton {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	clicked := false
	if pressed, px, py := utils.IsPointerJustPressed(); pressed {
		clicked = s.buttonRect().Contains(float64(px), float64(py))
	}
	if clicked || inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.log.Info("Reload requested")
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
		s.env.reload()
	}
}

// Resize 实现 ui.Resizable
func (s *ErrorScene) Resize(width, height int) {
	s.width, s.height = float64(width), float64(height)
}

// panelRect 横幅面板区域
func (s *ErrorScene) panelRect() popover.Rect {
	w := min(560, s.width-48)
	h := 180.0 + 22*float64(len(s.banner.Details))
	return popover.Rect{X: (s.width - w) / 2, Y: (s.height - h) / 2, W: w, H: h}
}

// buttonRect 重新加载按钮区域
func (s *ErrorScene) buttonRect() popover.Rect {
	p := s.panelRect()
	return popover.Rect{X: p.X + 32, Y: p.Bottom() - 32 - 40, W: 120, H: 40}
}

// Draw 绘制错误横幅
func (s *ErrorScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	p := s.panelRect()
	fillRect(screen, p, colorSurface)
	fillRect(screen, popover.Rect{X: p.X, Y: p.Y, W: 4, H: p.H}, colorAccent)

	x, y := p.X+32, p.Y+28
	drawText(screen, s.banner.Title, s.titleFace, x, y, colorText)
	y += 44
	msg := utils.TruncateText(s.banner.Message, s.bodyFace, p.W-64)
	drawText(screen, msg, s.bodyFace, x, y, colorTextDim)
	y += 28
	for _, d := range s.banner.Details {
		drawText(screen, utils.TruncateText(d, s.bodyFace, p.W-64), s.bodyFace, x, y, colorTextDim)
		y += 22
	}

	btn := s.buttonRect()
	btnColor := colorAccent
	if s.hoverButton {
		btnColor = colorAccentHi
	}
	fillRect(screen, btn, btnColor)
	drawCenteredText(screen, s.banner.Action, s.bodyFace, btn, colorText)
}
