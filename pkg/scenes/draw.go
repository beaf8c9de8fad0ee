package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/flixrail/pkg/popover"
)

// 调色板
var (
	colorBackground  = color.RGBA{20, 20, 20, 255}
	colorSurface     = color.RGBA{38, 38, 38, 255}
	colorSurfaceHi   = color.RGBA{58, 58, 58, 255}
	colorText        = color.RGBA{229, 229, 229, 255}
	colorTextDim     = color.RGBA{150, 150, 150, 255}
	colorAccent      = color.RGBA{229, 9, 20, 255}
	colorAccentHi    = color.RGBA{244, 6, 18, 255}
	colorShadow      = color.RGBA{0, 0, 0, 160}
	colorDotIdle     = color.RGBA{77, 77, 77, 255}
	colorPlaceholder = color.RGBA{45, 45, 45, 255}
)

// fillRect 绘制填充矩形
func fillRect(screen *ebiten.Image, r popover.Rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, true)
}

// strokeRect 绘制矩形边框
func strokeRect(screen *ebiten.Image, r popover.Rect, width float64, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), clr, true)
}

// drawText 在 (x, y) 绘制文本（左上角对齐）
func drawText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, face, op)
}

// drawShadowText 带阴影的文本，用于主视觉等压在图片上的文字
func drawShadowText(screen *ebiten.Image, str string, face *text.GoTextFace, x, y float64, clr color.Color) {
	drawText(screen, str, face, x+2, y+2, colorShadow)
	drawText(screen, str, face, x, y, clr)
}

// drawCenteredText 在矩形内居中绘制文本
func drawCenteredText(screen *ebiten.Image, str string, face *text.GoTextFace, r popover.Rect, clr color.Color) {
	if face == nil || str == "" {
		return
	}
	w, h := text.Measure(str, face, 0)
	drawText(screen, str, face, r.X+(r.W-w)/2, r.Y+(r.H-h)/2, clr)
}

// textWidth 文本绘制宽度
func textWidth(str string, face *text.GoTextFace) float64 {
	if face == nil {
		return 0
	}
	w, _ := text.Measure(str, face, 0)
	return w
}

// drawImageFit 把图片缩放绘制到矩形中（图片已按目标尺寸裁剪时缩放比为 1）
func drawImageFit(screen *ebiten.Image, img *ebiten.Image, r popover.Rect, alpha float32) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(r.W/float64(b.Dx()), r.H/float64(b.Dy()))
	op.GeoM.Translate(r.X, r.Y)
	op.ColorScale.ScaleAlpha(alpha)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(img, op)
}
