package scenes

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
	"github.com/decker502/flixrail/pkg/ui"
	"github.com/decker502/flixrail/pkg/utils"
)

// posterBucket 海报解码尺寸的取整粒度，resize 期间避免每个像素宽度都重新解码
const posterBucket = 32

// posterSize 把绘制尺寸向上取整到 posterBucket 的倍数
func posterSize(w, h float64) (int, int) {
	round := func(v float64) int {
		n := (int(v) + posterBucket - 1) / posterBucket * posterBucket
		return max(n, posterBucket)
	}
	return round(w), round(h)
}

// Draw 绘制首页
func (s *HomeScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	s.drawHero(screen)
	for i, rv := range s.rails {
		s.drawRail(screen, i, rv)
	}
	s.drawHeader(screen)
	s.drawMenu(screen, s.notifications)
	s.drawMenu(screen, s.profile)
	s.drawCardPopover(screen)

	if s.env.Debug {
		msg := fmt.Sprintf("FPS %.0f  posters loading %d\n%s", ebiten.ActualFPS(), s.env.Resources.Loading(), s.railStatus())
		ebitenutil.DebugPrintAt(screen, msg, 8, int(config.HeaderHeight)+8)
	}

	for _, rv := range s.rails {
		rv.host.MarkPainted()
	}
}

// drawPoster 绘制海报，未就绪时绘制占位
func (s *HomeScene) drawPoster(screen *ebiten.Image, ref string, r popover.Rect, fallback string) {
	w, h := posterSize(r.W, r.H)
	img, state := s.env.Resources.Image(ref, w, h)
	if state == ui.ImageReady && img != nil {
		drawImageFit(screen, img, r, 1)
		return
	}
	fillRect(screen, r, colorPlaceholder)
	if state == ui.ImageFailed && fallback != "" {
		label := utils.TruncateText(fallback, s.fonts.card, r.W-16)
		drawCenteredText(screen, label, s.fonts.card, r, colorTextDim)
	}
}

// drawHero 绘制主视觉：背景海报、渐变遮罩、标题、简介与按钮
func (s *HomeScene) drawHero(screen *ebiten.Image) {
	hero := s.page.Hero
	heroH := s.heroHeight()
	r := popover.Rect{X: 0, Y: -s.scrollY, W: s.width, H: heroH}
	if r.Bottom() <= 0 || hero == nil {
		return
	}
	s.drawPoster(screen, hero.Image, r, "")

	// 左侧与底部渐变，保证文字可读
	const bands = 16
	for i := 0; i < bands; i++ {
		t := float64(i) / bands
		alpha := uint8(200 * (1 - t))
		band := popover.Rect{X: r.X + t*r.W*0.6, Y: r.Y, W: r.W * 0.6 / bands, H: r.H}
		fillRect(screen, band, color.RGBA{0, 0, 0, alpha})
		fade := popover.Rect{X: r.X, Y: r.Bottom() - float64(bands-i)*6, W: r.W, H: 6}
		fillRect(screen, fade, color.RGBA{20, 20, 20, uint8(255 * t)})
	}

	textW := s.width * config.HeroTextWidthRatio
	x := config.PagePaddingX
	y := r.Y + heroH*0.35

	titleLines := utils.WrapTextLines(hero.Title, s.fonts.heroTitle, textW, 2)
	for _, line := range titleLines {
		drawShadowText(screen, line, s.fonts.heroTitle, x, y, colorText)
		y += s.fonts.heroTitle.Size * 1.15
	}
	y += 8

	var meta []string
	if hero.Year > 0 {
		meta = append(meta, strconv.Itoa(hero.Year))
	}
	if hero.Rating != "" {
		meta = append(meta, string(hero.Rating)+"+")
	}
	meta = append(meta, hero.Genres...)
	if len(meta) > 0 {
		drawShadowText(screen, strings.Join(meta, " · "), s.fonts.nav, x, y, colorTextDim)
		y += s.fonts.nav.Size * 1.6
	}

	for _, line := range utils.WrapTextLines(hero.Description, s.fonts.heroBody, textW, config.HeroDescriptionLines) {
		drawShadowText(screen, line, s.fonts.heroBody, x, y, colorText)
		y += s.fonts.heroBody.Size * 1.4
	}
	y += 16

	play := popover.Rect{X: x, Y: y, W: config.HeroButtonWidth, H: config.HeroButtonHeight}
	fillRect(screen, play, colorText)
	drawCenteredText(screen, "Play", s.fonts.cardBold, play, colorBackground)
	info := popover.Rect{X: play.Right() + 12, Y: y, W: config.HeroButtonWidth, H: config.HeroButtonHeight}
	fillRect(screen, info, color.RGBA{109, 109, 110, 180})
	drawCenteredText(screen, "More Info", s.fonts.cardBold, info, colorText)
}

// drawRail 绘制一条轨道：标题、页码、指示条、卡片和箭头
func (s *HomeScene) drawRail(screen *ebiten.Image, index int, rv *railView) {
	top := rv.top - s.scrollY
	if top > s.height || top+rv.height() < 0 {
		return
	}
	eng := rv.rail.Engine

	title := rv.rail.Section.Title
	drawText(screen, title, s.fonts.railTitle, config.PagePaddingX, top+6, colorText)
	if index == s.focusRail {
		fillRect(screen, popover.Rect{X: config.PagePaddingX - 12, Y: top + 8, W: 4, H: config.RailTitleFontSize}, colorAccent)
	}
	labelX := config.PagePaddingX + textWidth(title, s.fonts.railTitle) + 14
	drawText(screen, eng.CurrentPageLabel(), s.fonts.card, labelX, top+12, colorTextDim)

	markers := eng.Pagination().Markers()
	for i, r := range s.markerRects(rv) {
		clr := colorDotIdle
		if markers[i] || i == rv.hoverMarker {
			clr = colorText
		}
		fillRect(screen, r, clr)
	}

	focusPos := -1
	if index == s.focusRail {
		if win := eng.Window(); s.focusCard < len(win) {
			focusPos = win[s.focusCard].Position
		}
	}
	for _, mc := range eng.CardsAt(rv.host.Offset()) {
		r := s.cardRect(rv, mc.Position)
		if r.Right() < 0 || r.X > s.width {
			continue
		}
		view := page.NewCardView(mc.Card, s.env.Likes.Get(string(mc.Card.ID)))
		hovered := s.hoverCard != nil && s.hoverCard.rail == index && s.hoverCard.position == mc.Position
		s.drawCard(screen, r, view, hovered, mc.Position == focusPos)
	}

	s.drawArrows(screen, rv)
}

// drawCard 绘制一张卡片
func (s *HomeScene) drawCard(screen *ebiten.Image, r popover.Rect, view page.CardView, hovered, focused bool) {
	s.drawPoster(screen, view.Image, r, view.Title)

	if view.Rank != "" {
		drawShadowText(screen, view.Rank, s.fonts.rank, r.X+8, r.Bottom()-s.fonts.rank.Size*1.1, colorText)
	}
	if view.Badge != "" {
		badge := popover.Rect{X: r.X + 6, Y: r.Y + 6, W: textWidth(view.Badge, s.fonts.cardBold) + 10, H: 18}
		fillRect(screen, badge, colorAccent)
		drawCenteredText(screen, view.Badge, s.fonts.cardBold, badge, colorText)
	}

	switch {
	case focused:
		strokeRect(screen, r, 3, colorText)
	case hovered:
		strokeRect(screen, r, 2, colorTextDim)
	}

	like := s.likeRect(r)
	title := utils.TruncateText(view.Title, s.fonts.card, r.W-like.W-8)
	drawText(screen, title, s.fonts.card, r.X, r.Bottom()+10, colorText)
	s.drawLike(screen, like, view)
}

// drawLike 绘制点赞按钮：心形（实心表示已赞）和计数
func (s *HomeScene) drawLike(screen *ebiten.Image, r popover.Rect, view page.CardView) {
	cx, cy := float32(r.X+10), float32(r.Y+r.H/2)
	clr := colorTextDim
	if view.Liked {
		clr = colorAccent
	}
	// 两个圆加一个 V 形近似心形
	if view.Liked {
		vector.DrawFilledCircle(screen, cx-3, cy-2, 3.6, clr, true)
		vector.DrawFilledCircle(screen, cx+3, cy-2, 3.6, clr, true)
		vector.DrawFilledCircle(screen, cx, cy+2, 3.2, clr, true)
	} else {
		vector.StrokeCircle(screen, cx-3, cy-2, 3, 1.2, clr, true)
		vector.StrokeCircle(screen, cx+3, cy-2, 3, 1.2, clr, true)
	}
	vector.StrokeLine(screen, cx-6, cy-1, cx, cy+6, 1.2, clr, true)
	vector.StrokeLine(screen, cx, cy+6, cx+6, cy-1, 1.2, clr, true)
	drawText(screen, strconv.Itoa(view.Likes), s.fonts.card, r.X+20, r.Y+4, clr)
}

// drawArrows 绘制左右箭头
func (s *HomeScene) drawArrows(screen *ebiten.Image, rv *railView) {
	ctrl := rv.rail.Engine.Controls()
	prev, next := s.arrowRects(rv)
	s.drawArrow(screen, prev, -1, ctrl.PrevDisabled, rv.hoverPrev)
	s.drawArrow(screen, next, 1, ctrl.NextDisabled, rv.hoverNext)
}

// drawArrow 绘制单个箭头，dir 为 -1（向左）或 1（向右）
func (s *HomeScene) drawArrow(screen *ebiten.Image, r popover.Rect, dir float32, disabled, hovered bool) {
	bg := color.RGBA{20, 20, 20, 140}
	fg := colorText
	switch {
	case disabled:
		fg = color.RGBA{90, 90, 90, 255}
	case hovered:
		bg = color.RGBA{20, 20, 20, 200}
	}
	fillRect(screen, r, bg)

	cx, cy := float32(r.X+r.W/2), float32(r.Y+r.H/2)
	const arm = 9
	width := float32(2.5)
	if hovered {
		width = 3.5
	}
	vector.StrokeLine(screen, cx-dir*arm/2, cy-arm, cx+dir*arm/2, cy, width, fg, true)
	vector.StrokeLine(screen, cx+dir*arm/2, cy, cx-dir*arm/2, cy+arm, width, fg, true)
}

// drawHeader 绘制页头：滚动越过阈值后背景由透明变为实色
func (s *HomeScene) drawHeader(screen *ebiten.Image) {
	bar := popover.Rect{W: s.width, H: config.HeaderHeight}
	alpha := uint8(255 * s.header.Opacity)
	if s.header.Solid {
		alpha = 255
	}
	fillRect(screen, bar, color.RGBA{colorBackground.R, colorBackground.G, colorBackground.B, alpha})

	x := config.PagePaddingX
	logoY := (config.HeaderHeight - s.fonts.logo.Size) / 2
	drawText(screen, "FLIXRAIL", s.fonts.logo, x, logoY, colorAccent)
	x += textWidth("FLIXRAIL", s.fonts.logo) + 36

	navY := (config.HeaderHeight - s.fonts.nav.Size) / 2
	for i, item := range page.NavItems {
		clr := colorTextDim
		if i == 0 {
			clr = colorText
		}
		drawText(screen, item, s.fonts.nav, x, navY, clr)
		x += textWidth(item, s.fonts.nav) + config.HeaderNavGap
	}

	s.drawBell(screen, s.notifications)
	s.drawAvatar(screen, s.profile)
}

// drawBell 通知图标：铃铛轮廓加未读角标
func (s *HomeScene) drawBell(screen *ebiten.Image, m *headerMenu) {
	a := m.anchor
	cx, cy := float32(a.X+a.W/2), float32(a.Y+a.H/2)
	clr := colorTextDim
	if m.hovered || m.ctrl.IsOpen() {
		clr = colorText
	}
	vector.StrokeCircle(screen, cx, cy-2, 8, 2, clr, true)
	vector.StrokeLine(screen, cx-11, cy+7, cx+11, cy+7, 2, clr, true)
	vector.DrawFilledCircle(screen, cx, cy+10, 2, clr, true)

	if n := m.badge; n > 0 {
		vector.DrawFilledCircle(screen, cx+9, cy-9, 7, colorAccent, true)
		badge := popover.Rect{X: float64(cx) + 2, Y: float64(cy) - 16, W: 14, H: 14}
		drawCenteredText(screen, strconv.Itoa(n), s.fonts.card, badge, colorText)
	}
}

// drawAvatar 头像图标
func (s *HomeScene) drawAvatar(screen *ebiten.Image, m *headerMenu) {
	fillRect(screen, m.anchor, color.RGBA{0, 113, 235, 255})
	drawCenteredText(screen, "F", s.fonts.cardBold, m.anchor, colorText)
	if m.hovered || m.ctrl.IsOpen() {
		strokeRect(screen, m.anchor, 2, colorText)
	}
}

// drawMenu 绘制已打开的页头菜单
func (s *HomeScene) drawMenu(screen *ebiten.Image, m *headerMenu) {
	if !m.ctrl.IsOpen() {
		return
	}
	r := s.menuRect(m)
	fillRect(screen, r, color.RGBA{0, 0, 0, 230})
	strokeRect(screen, r, 1, colorSurfaceHi)
	for i, item := range m.items {
		row := popover.Rect{X: r.X, Y: r.Y + 8 + float64(i)*config.PopoverRowHeight, W: r.W, H: config.PopoverRowHeight}
		if i == m.hoverItem {
			fillRect(screen, row, colorSurfaceHi)
		}
		label := utils.TruncateText(item, s.fonts.nav, row.W-24)
		drawText(screen, label, s.fonts.nav, row.X+12, row.Y+(row.H-s.fonts.nav.Size)/2, colorText)
	}
}

// drawCardPopover 绘制卡片详情弹层
func (s *HomeScene) drawCardPopover(screen *ebiten.Image) {
	if !s.cardPop.IsOpen() || s.popTarget == nil {
		return
	}
	c := s.popTarget.card
	view := page.NewCardView(c, s.env.Likes.Get(string(c.ID)))
	r := s.cardPopRect(s.popTarget)

	fillRect(screen, r, colorSurface)
	strokeRect(screen, r, 1, colorSurfaceHi)

	x, y := r.X+16, r.Y+14
	title := utils.TruncateText(view.Title, s.fonts.cardBold, r.W-32)
	drawText(screen, title, s.fonts.cardBold, x, y, colorText)
	y += 22
	meta := view.Meta
	if view.Badge != "" {
		meta = view.Badge + "  " + meta
	}
	if view.Rank != "" {
		meta = "#" + view.Rank + "  " + meta
	}
	drawText(screen, utils.TruncateText(meta, s.fonts.card, r.W-32), s.fonts.card, x, y, colorTextDim)

	like := s.cardPopLikeRect(r)
	bg := colorSurfaceHi
	if s.hoverPopLike {
		bg = color.RGBA{80, 80, 80, 255}
	}
	fillRect(screen, like, bg)
	s.drawLike(screen, popover.Rect{X: like.X + 8, Y: like.Y + 2, W: like.W - 8, H: like.H - 4}, view)
}
