package scenes

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/popover"
	"github.com/decker502/flixrail/pkg/utils"
)

// digitKeys 1-9 跳转到对应页
var digitKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
	ebiten.KeyDigit7, ebiten.KeyDigit8, ebiten.KeyDigit9,
}

// updateKeyboard 键盘导航
func (s *HomeScene) updateKeyboard() {
	pressed := inpututil.IsKeyJustPressed

	switch {
	case pressed(ebiten.KeyArrowDown):
		s.moveFocus(1)
	case pressed(ebiten.KeyArrowUp):
		s.moveFocus(-1)
	case pressed(ebiten.KeyArrowRight):
		s.next(s.focused())
	case pressed(ebiten.KeyArrowLeft):
		s.previous(s.focused())
	case pressed(ebiten.KeyTab):
		if ebiten.IsKeyPressed(ebiten.KeyShift) {
			s.cycleFocusCard(-1)
		} else {
			s.cycleFocusCard(1)
		}
	case pressed(ebiten.KeyL):
		if c, ok := s.focusedCard(); ok {
			s.toggleLike(c)
		}
	case pressed(ebiten.KeyEnter), pressed(ebiten.KeySpace):
		s.toggleCardPopover()
	case pressed(ebiten.KeyP):
		s.toggleMenu(s.profile)
	case pressed(ebiten.KeyN):
		s.toggleMenu(s.notifications)
	case pressed(ebiten.KeyEscape):
		s.closePopovers()
	case pressed(ebiten.KeyM):
		s.toggleReducedMotion()
	case pressed(ebiten.KeyPageDown):
		s.scrollBy(s.height * 0.8)
	case pressed(ebiten.KeyPageUp):
		s.scrollBy(-s.height * 0.8)
	case pressed(ebiten.KeyHome):
		s.scrollTo(0)
	case pressed(ebiten.KeyEnd):
		s.scrollTo(s.maxScroll)
	case pressed(ebiten.KeyR):
		s.log.Info("Reload requested")
		s.env.reload()
		return
	}

	for i, key := range digitKeys {
		if pressed(key) {
			s.goToPage(s.focused(), i)
		}
	}
}

// updatePointer 鼠标/触摸：滚轮、悬停、点击和滑动
func (s *HomeScene) updatePointer() {
	mx, my := utils.GetPointerPosition()
	x, y := float64(mx), float64(my)

	dx, dy := utils.WheelDelta(config.WheelPixelsPerNotch)
	if dy != 0 {
		s.scrollBy(dy)
	}
	if dx != 0 {
		s.horizontalWheel(x, y, dx)
	}

	s.layoutHeader()
	s.updateMenuHover(s.profile, x, y)
	s.updateMenuHover(s.notifications, x, y)
	s.updateCardHover(x, y)
	clickable := s.updateRailHover(x, y)

	if clickable || s.hoverCard != nil || s.profile.hovered || s.notifications.hovered {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}

	if pressed, px, py := utils.IsPointerJustPressed(); pressed {
		s.click(float64(px), float64(py))
	}

	switch s.swipe.Update() {
	case utils.GestureSwipeLeft:
		_, sy := s.swipe.Start()
		s.next(s.railAtY(float64(sy)))
	case utils.GestureSwipeRight:
		_, sy := s.swipe.Start()
		s.previous(s.railAtY(float64(sy)))
	}
}

// horizontalWheel 触控板横向滚动：累计一格后翻页
func (s *HomeScene) horizontalWheel(x, y, dx float64) {
	rv := s.railAtY(y)
	if rv == nil {
		s.wheelX = 0
		return
	}
	s.wheelX += dx
	switch {
	case s.wheelX >= config.WheelPixelsPerNotch:
		s.next(rv)
		s.wheelX = 0
	case s.wheelX <= -config.WheelPixelsPerNotch:
		s.previous(rv)
		s.wheelX = 0
	}
}

// updateMenuHover 指针进出锚点或已打开的菜单时驱动延时开合
func (s *HomeScene) updateMenuHover(m *headerMenu, x, y float64) {
	menu := s.menuRect(m)
	inside := m.anchor.Contains(x, y) || (m.ctrl.IsOpen() && menu.Contains(x, y))
	if inside != m.hovered {
		m.hovered = inside
		if inside {
			m.ctrl.Enter()
		} else {
			m.ctrl.Leave()
		}
	}

	m.hoverItem = -1
	if m.ctrl.IsOpen() && menu.Contains(x, y) {
		m.hoverItem = s.menuItemAt(m, y)
	}
}

// updateCardHover 悬停卡片时驱动卡片详情弹层
func (s *HomeScene) updateCardHover(x, y float64) {
	if t := s.popTarget; t != nil && t.rail < len(s.rails) {
		t.rect = s.cardRect(s.rails[t.rail], t.position)
	}

	var hit *cardRef
	popOpen := s.cardPop.IsOpen() && s.popTarget != nil
	if popOpen && s.cardPopRect(s.popTarget).Contains(x, y) {
		hit = s.popTarget
	} else {
		hit = s.cardAt(x, y)
	}
	s.hoverPopLike = popOpen && s.cardPopLikeRect(s.cardPopRect(s.popTarget)).Contains(x, y)

	switch {
	case hit == nil:
		if s.hoverCard != nil {
			s.hoverCard = nil
			s.cardPop.Leave()
		}
	case !sameCard(hit, s.hoverCard):
		s.hoverCard = hit
		if !sameCard(hit, s.popTarget) {
			s.cardPop.Close()
			s.popTarget = hit
		}
		s.cardPop.Enter()
	}
}

// updateRailHover 更新箭头和分页指示的悬停状态，返回是否悬停在可点击控件上
func (s *HomeScene) updateRailHover(x, y float64) bool {
	clickable := false
	for _, rv := range s.rails {
		prev, next := s.arrowRects(rv)
		ctrl := rv.rail.Engine.Controls()
		rv.hoverPrev = prev.Contains(x, y) && !ctrl.PrevDisabled
		rv.hoverNext = next.Contains(x, y) && !ctrl.NextDisabled
		rv.hoverMarker = -1
		for i, r := range s.markerHitRects(rv) {
			if r.Contains(x, y) {
				rv.hoverMarker = i
			}
		}
		clickable = clickable || rv.hoverPrev || rv.hoverNext || rv.hoverMarker >= 0
	}
	return clickable
}

// click 处理一次按下
func (s *HomeScene) click(x, y float64) {
	for _, m := range []*headerMenu{s.profile, s.notifications} {
		if m.ctrl.IsOpen() && s.menuRect(m).Contains(x, y) {
			if i := s.menuItemAt(m, y); i >= 0 {
				s.log.Info("Menu item selected", zap.String("menu", m.name), zap.String("item", m.items[i]))
				m.ctrl.Close()
			}
			return
		}
		if m.anchor.Contains(x, y) {
			s.toggleMenu(m)
			return
		}
	}
	s.profile.ctrl.Close()
	s.notifications.ctrl.Close()

	if s.cardPop.IsOpen() && s.popTarget != nil {
		r := s.cardPopRect(s.popTarget)
		if s.cardPopLikeRect(r).Contains(x, y) {
			s.toggleLike(s.popTarget.card)
			return
		}
		if r.Contains(x, y) {
			return
		}
	}

	if y < config.HeaderHeight {
		return
	}
	for i, rv := range s.rails {
		prev, next := s.arrowRects(rv)
		switch {
		case prev.Contains(x, y):
			s.focusRail = i
			s.previous(rv)
			return
		case next.Contains(x, y):
			s.focusRail = i
			s.next(rv)
			return
		}
		for p, r := range s.markerHitRects(rv) {
			if r.Contains(x, y) {
				s.focusRail = i
				s.goToPage(rv, p)
				return
			}
		}
	}

	if c := s.cardAt(x, y); c != nil {
		s.focusRail = c.rail
		if s.likeRect(c.rect).Contains(x, y) {
			s.toggleLike(c.card)
			return
		}
		s.focusCardAt(c)
		s.popTarget = c
		s.cardPop.Toggle()
	}
}

// focusCardAt 把键盘焦点移到被点击的卡片
func (s *HomeScene) focusCardAt(c *cardRef) {
	for i, mc := range s.rails[c.rail].rail.Engine.Window() {
		if mc.Position == c.position {
			s.focusCard = i
			return
		}
	}
}

// sameCard 是否指向同一张物化卡片
func sameCard(a, b *cardRef) bool {
	if a == nil || b == nil {
		return false
	}
	return a.rail == b.rail && a.position == b.position
}

// ============================================================================
// 命中测试（屏幕坐标）
// ============================================================================

// screenRect 视口区域
func (s *HomeScene) screenRect() popover.Rect {
	return popover.Rect{W: s.width, H: s.height}
}

// layoutHeader 计算页头图标锚点
func (s *HomeScene) layoutHeader() {
	y := (config.HeaderHeight - config.HeaderIconSize) / 2
	right := s.width - config.PagePaddingX
	s.profile.anchor = popover.Rect{X: right - config.HeaderIconSize, Y: y, W: config.HeaderIconSize, H: config.HeaderIconSize}
	s.notifications.anchor = popover.Rect{
		X: s.profile.anchor.X - config.HeaderIconGap - config.HeaderIconSize,
		Y: y,
		W: config.HeaderIconSize,
		H: config.HeaderIconSize,
	}
}

// menuRect 菜单弹层区域
func (s *HomeScene) menuRect(m *headerMenu) popover.Rect {
	size := popover.Size{W: config.PopoverWidth, H: float64(len(m.items))*config.PopoverRowHeight + 16}
	return popover.Place(m.anchor, size, s.screenRect(), s.env.Config.Popover.Margin)
}

// menuItemAt 菜单中 y 处的条目，没有时返回 -1
func (s *HomeScene) menuItemAt(m *headerMenu, y float64) int {
	i := int((y - s.menuRect(m).Y - 8) / config.PopoverRowHeight)
	if i < 0 || i >= len(m.items) {
		return -1
	}
	return i
}

// railAtY 卡片行覆盖 y 的轨道
func (s *HomeScene) railAtY(y float64) *railView {
	if y < config.HeaderHeight {
		return nil
	}
	for _, rv := range s.rails {
		top := rv.cardsTop() - s.scrollY
		if y >= top && y < top+rv.posterH+config.CardInfoHeight {
			return rv
		}
	}
	return nil
}

// cardRect 物化位置 position 的海报区域
func (s *HomeScene) cardRect(rv *railView, position int) popover.Rect {
	g := rv.rail.Engine.Geometry()
	return popover.Rect{
		X: config.PagePaddingX + float64(position)*g.ItemWidth + rv.host.Offset(),
		Y: rv.cardsTop() - s.scrollY,
		W: g.CardWidth,
		H: rv.posterH,
	}
}

// likeRect 卡片信息行上的点赞按钮
func (s *HomeScene) likeRect(card popover.Rect) popover.Rect {
	return popover.Rect{X: card.Right() - 56, Y: card.Bottom() + 6, W: 56, H: 24}
}

// cardAt 指针下的卡片（海报或信息行）
func (s *HomeScene) cardAt(x, y float64) *cardRef {
	if y < config.HeaderHeight || x < config.PagePaddingX || x >= s.width-config.PagePaddingX {
		return nil
	}
	for i, rv := range s.rails {
		for _, mc := range rv.rail.Engine.CardsAt(rv.host.Offset()) {
			r := s.cardRect(rv, mc.Position)
			hit := r
			hit.H += config.CardInfoHeight
			if hit.Contains(x, y) {
				return &cardRef{rail: i, position: mc.Position, card: mc.Card, rect: r}
			}
		}
	}
	return nil
}

// arrowRects 左右箭头区域（覆盖视口两侧留白）
func (s *HomeScene) arrowRects(rv *railView) (prev, next popover.Rect) {
	y := rv.cardsTop() - s.scrollY
	prev = popover.Rect{X: 0, Y: y, W: config.PagePaddingX, H: rv.posterH}
	next = popover.Rect{X: s.width - config.PagePaddingX, Y: y, W: config.PagePaddingX, H: rv.posterH}
	return prev, next
}

// markerRects 分页指示条的绘制区域（标题行右侧）
func (s *HomeScene) markerRects(rv *railView) []popover.Rect {
	total := rv.rail.Engine.Pagination().Total
	if total <= 1 {
		return nil
	}
	x := s.width - config.PagePaddingX - float64(total)*(config.DotSize+config.DotGap) + config.DotGap
	y := rv.top - s.scrollY + config.RailTitleHeight/2
	rects := make([]popover.Rect, total)
	for i := range rects {
		rects[i] = popover.Rect{X: x + float64(i)*(config.DotSize+config.DotGap), Y: y, W: config.DotSize, H: config.DotHeight}
	}
	return rects
}

// markerHitRects 分页指示条的点击区域（纵向放大）
func (s *HomeScene) markerHitRects(rv *railView) []popover.Rect {
	rects := s.markerRects(rv)
	for i := range rects {
		rects[i].Y -= 8
		rects[i].H += 16
	}
	return rects
}

// cardPopRect 卡片详情弹层区域
func (s *HomeScene) cardPopRect(c *cardRef) popover.Rect {
	size := popover.Size{W: config.CardPopoverWidth, H: config.CardPopoverHeight}
	return popover.Place(c.rect, size, s.screenRect(), s.env.Config.Popover.Margin)
}

// cardPopLikeRect 详情弹层中的点赞按钮
func (s *HomeScene) cardPopLikeRect(pop popover.Rect) popover.Rect {
	return popover.Rect{X: pop.X + 16, Y: pop.Bottom() - 16 - 28, W: 96, H: 28}
}
