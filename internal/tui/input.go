package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/flixrail/pkg/popover"
)

// HandleEvent 处理一个终端事件，返回 false 表示退出
func (m *Model) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		m.handleKey(ev)
	case *tcell.EventMouse:
		if m.phase == phaseHome {
			m.handleMouse(ev)
		}
	case *tcell.EventResize:
		w, h := ev.Size()
		m.Resize(w, h)
	case *tcell.EventInterrupt:
		if l, ok := ev.Data().(loaded); ok {
			m.apply(l)
		}
	}
	return !m.quit
}

func (m *Model) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
		m.quit = true
		return
	}

	switch m.phase {
	case phaseLoading:
		return
	case phaseError:
		if ev.Key() == tcell.KeyEnter || (ev.Key() == tcell.KeyRune && ev.Rune() == 'r') {
			m.Reload()
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyUp:
		m.moveFocus(-1)
	case tcell.KeyDown:
		m.moveFocus(1)
	case tcell.KeyLeft:
		m.previous()
	case tcell.KeyRight:
		m.next()
	case tcell.KeyTab:
		m.cycleFocusCard(1)
	case tcell.KeyBacktab:
		m.cycleFocusCard(-1)
	case tcell.KeyEnter:
		m.toggleDetails()
	case tcell.KeyEscape:
		m.closePopovers()
	case tcell.KeyPgDn:
		m.scrollTo(m.scroll + m.visibleRows())
	case tcell.KeyPgUp:
		m.scrollTo(m.scroll - m.visibleRows())
	case tcell.KeyHome:
		m.scrollTo(0)
	case tcell.KeyEnd:
		m.scrollTo(m.maxScroll())
	case tcell.KeyRune:
		m.handleRune(ev.Rune())
	}
}

func (m *Model) handleRune(r rune) {
	switch {
	case r == 'l':
		if ref, ok := m.focusedCard(); ok {
			m.toggleLike(ref.card)
		}
	case r == 'p':
		m.toggleMenu(m.profile)
	case r == 'n':
		m.toggleMenu(m.notifications)
	case r == 'r':
		m.Reload()
	case r == ' ':
		m.toggleDetails()
	case r >= '1' && r <= '9':
		m.goToPage(int(r - '1'))
	}
}

func (m *Model) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && m.buttons&tcell.Button1 == 0
	m.buttons = buttons

	switch {
	case buttons&tcell.WheelUp != 0:
		m.scrollTo(m.scroll - 1)
		return
	case buttons&tcell.WheelDown != 0:
		m.scrollTo(m.scroll + 1)
		return
	case buttons&tcell.WheelLeft != 0:
		m.previous()
		return
	case buttons&tcell.WheelRight != 0:
		m.next()
		return
	}

	m.updateHover(x, y)
	if pressed {
		m.click(x, y)
	}
}

// updateHover 指针悬停在卡片或详情弹层上时打开详情，离开后延时关闭
func (m *Model) updateHover(x, y int) {
	hit := m.cardAt(x, y)
	m.hover = hit

	if m.details.IsOpen() && m.detailsRect().Contains(float64(x), float64(y)) {
		m.details.Enter()
		return
	}
	switch {
	case hit != nil && (m.detailTarget == nil || m.detailTarget.rail != hit.rail || m.detailTarget.position != hit.position):
		m.details.Close()
		m.detailTarget = hit
		m.details.Enter()
	case hit != nil:
		m.details.Enter()
	case m.detailTarget != nil:
		m.details.Leave()
	}
}

func (m *Model) click(x, y int) {
	profile, alerts := m.headerTargets()
	switch {
	case profile.Contains(float64(x), float64(y)):
		m.toggleMenu(m.profile)
		return
	case alerts.Contains(float64(x), float64(y)):
		m.toggleMenu(m.notifications)
		return
	}

	for i := range m.rails {
		top := m.railTop(i) + 1
		if y < top || y >= top+cardRows {
			continue
		}
		m.focusRail = i
		switch {
		case x < padX:
			m.previous()
			return
		case x >= m.width-padX:
			m.next()
			return
		}
	}

	ref := m.cardAt(x, y)
	if ref == nil {
		return
	}
	m.focusRail = ref.rail
	win := m.rails[ref.rail].Engine.Window()
	for i, mc := range win {
		if mc.Position == ref.position {
			m.focusCard = i
		}
	}
	// 第三行是点赞按钮
	if y == m.railTop(ref.rail)+cardRows {
		m.toggleLike(ref.card)
	}
}

// cardAt 屏幕坐标处的卡片
func (m *Model) cardAt(x, y int) *cardRef {
	if x < padX || x >= m.width-padX || y < headerRows {
		return nil
	}
	for i, r := range m.rails {
		top := m.railTop(i) + 1
		if y < top || y >= top+cardRows {
			continue
		}
		for _, mc := range r.Engine.CardsAt(r.host.Offset()) {
			cx := m.cardX(r, mc.Position)
			if float64(x) >= cx && float64(x) < cx+r.Engine.Geometry().CardWidth {
				return &cardRef{rail: i, position: mc.Position, card: mc.Card}
			}
		}
	}
	return nil
}

// headerTargets 页头右侧两个菜单入口的位置
func (m *Model) headerTargets() (profile, alerts popover.Rect) {
	pw := runewidth.StringWidth(profileLabel)
	aw := runewidth.StringWidth(m.alertsLabel())
	profile = popover.Rect{X: float64(m.width - padX - pw), Y: 0, W: float64(pw), H: 1}
	alerts = popover.Rect{X: profile.X - 2 - float64(aw), Y: 0, W: float64(aw), H: 1}
	return profile, alerts
}

// menuRect 页头菜单弹层位置
func (m *Model) menuRect(anchor popover.Rect, items []string) popover.Rect {
	w := 0
	for _, it := range items {
		w = max(w, runewidth.StringWidth(it))
	}
	size := popover.Size{W: float64(w + 4), H: float64(len(items) + 2)}
	return popover.Place(anchor, size, m.screenRect(), 0)
}

// detailsRect 卡片详情弹层位置（卡片下方，空间不足时在上方）
func (m *Model) detailsRect() popover.Rect {
	t := m.detailTarget
	if t == nil || t.rail >= len(m.rails) {
		return popover.Rect{}
	}
	r := m.rails[t.rail]
	anchor := popover.Rect{
		X: m.cardX(r, t.position),
		Y: float64(m.railTop(t.rail) + 1),
		W: r.Engine.Geometry().CardWidth,
		H: cardRows,
	}
	return popover.Place(anchor, popover.Size{W: detailsWidth, H: detailsHeight}, m.screenRect(), 0)
}

func (m *Model) screenRect() popover.Rect {
	return popover.Rect{W: float64(m.width), H: float64(m.height - statusRows)}
}
