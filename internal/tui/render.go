package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
)

// 弹层尺寸（单元格）
const (
	detailsWidth  = 36
	detailsHeight = 7
)

const (
	logoText     = "FLIXRAIL"
	profileLabel = "p Profile"
	ellipsis     = "…"
	hints        = "↑↓ rail  ←→ page  1-9 jump  Tab card  Enter details  l like  p/n menus  r reload  q quit"
)

var spinner = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

var (
	colorAccent  = tcell.NewRGBColor(229, 9, 20)
	colorSurface = tcell.NewRGBColor(38, 38, 38)
	colorHover   = tcell.NewRGBColor(64, 64, 64)
	colorPanel   = tcell.NewRGBColor(24, 24, 24)

	styleBase    = tcell.StyleDefault
	styleDim     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleBold    = tcell.StyleDefault.Bold(true)
	styleLogo    = tcell.StyleDefault.Foreground(colorAccent).Bold(true)
	styleCard    = tcell.StyleDefault.Background(colorSurface).Foreground(tcell.ColorWhite)
	styleHover   = tcell.StyleDefault.Background(colorHover).Foreground(tcell.ColorWhite)
	styleFocus   = tcell.StyleDefault.Background(colorAccent).Foreground(tcell.ColorWhite).Bold(true)
	stylePanel   = tcell.StyleDefault.Background(colorPanel).Foreground(tcell.ColorWhite)
	styleDisable = tcell.StyleDefault.Foreground(tcell.NewRGBColor(80, 80, 80))
)

// Draw 绘制当前画面
func (m *Model) Draw(s tcell.Screen) {
	s.Clear()
	switch m.phase {
	case phaseLoading:
		m.drawLoading(s)
	case phaseError:
		m.drawError(s)
	case phaseHome:
		m.drawHome(s)
	}
	m.drawStatus(s)
}

// putString 从 (x, y) 开始写入字符串，只输出落在 [clipL, clipR) 内的单元格，返回结束列
func putString(s tcell.Screen, x, y int, str string, style tcell.Style, clipL, clipR int) int {
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x >= clipL && x+w <= clipR {
			s.SetContent(x, y, r, nil, style)
		}
		x += w
	}
	return x
}

// fill 用空格填充矩形，超出 [clipL, clipR) 的列被裁掉
func fill(s tcell.Screen, x, y, w, h int, style tcell.Style, clipL, clipR int) {
	for row := y; row < y+h; row++ {
		for col := max(x, clipL); col < min(x+w, clipR); col++ {
			s.SetContent(col, row, ' ', nil, style)
		}
	}
}

// truncate 截断到 width 列，超出时以省略号结尾
func truncate(str string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(str, width, ellipsis)
}

// wrap 按单词折行，最多 maxLines 行，最后一行超出时截断
func wrap(str string, width, maxLines int) []string {
	if width <= 0 || maxLines <= 0 {
		return nil
	}
	var lines []string
	var line string
	words := strings.Fields(str)
	for i, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if runewidth.StringWidth(candidate) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		line = word
		if len(lines) == maxLines-1 {
			line = strings.Join(words[i:], " ")
			break
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i := range lines {
		lines[i] = truncate(lines[i], width)
	}
	return lines
}

// rowVisible 行是否位于页头与状态栏之间
func (m *Model) rowVisible(y int) bool {
	return y >= headerRows && y < m.height-statusRows
}

func (m *Model) drawLoading(s tcell.Screen) {
	cy := m.height / 2
	putString(s, (m.width-len(logoText))/2, cy-1, logoText, styleLogo, 0, m.width)
	text := string(spinner[m.frames%len(spinner)]) + " Loading…"
	putString(s, (m.width-runewidth.StringWidth(text))/2, cy+1, text, styleDim, 0, m.width)
}

func (m *Model) drawError(s tcell.Screen) {
	b := m.banner
	lines := []string{b.Message, ""}
	for _, d := range b.Details {
		lines = append(lines, "• "+d)
	}
	lines = append(lines, "", "[r] "+b.Action)

	w := min(m.width-4, 72)
	h := len(lines) + 4
	x := (m.width - w) / 2
	y := max(0, (m.height-h)/2)
	fill(s, x, y, w, h, stylePanel, 0, m.width)
	putString(s, x+2, y+1, truncate(b.Title, w-4), stylePanel.Bold(true).Foreground(colorAccent), 0, m.width)
	for i, line := range lines {
		putString(s, x+2, y+3+i, truncate(line, w-4), stylePanel, 0, m.width)
	}
}

func (m *Model) drawHome(s tcell.Screen) {
	m.drawHero(s)
	for i := range m.rails {
		m.drawRail(s, i)
	}
	m.drawHeader(s)
	m.drawMenus(s)
	m.drawDetails(s)
}

func (m *Model) drawHero(s tcell.Screen) {
	h := m.home.Hero
	if h == nil {
		return
	}
	width := m.width - 2*padX
	y := headerRows - m.scroll

	if m.rowVisible(y) {
		putString(s, padX, y, truncate(h.Title, width), styleBold, 0, m.width)
	}

	var meta []string
	if h.Year > 0 {
		meta = append(meta, strconv.Itoa(h.Year))
	}
	if h.Rating != "" {
		meta = append(meta, string(h.Rating)+"+")
	}
	meta = append(meta, h.Genres...)
	if m.rowVisible(y + 1) {
		putString(s, padX, y+1, truncate(strings.Join(meta, " · "), width), styleDim, 0, m.width)
	}

	for i, line := range wrap(h.Description, width, 2) {
		if m.rowVisible(y + 2 + i) {
			putString(s, padX, y+2+i, line, styleBase, 0, m.width)
		}
	}
}

func (m *Model) drawRail(s tcell.Screen, i int) {
	r := m.rails[i]
	top := m.railTop(i)
	eng := r.Engine
	focused := i == m.focusRail

	if m.rowVisible(top) {
		if focused {
			putString(s, 0, top, "▌", styleLogo, 0, m.width)
		}
		x := putString(s, padX, top, truncate(r.Section.Title, m.width/2), styleBold, 0, m.width)
		x += 2
		p := eng.Pagination()
		for _, active := range p.Markers() {
			mark, st := "○", styleDim
			if active {
				mark, st = "●", styleBase
			}
			x = putString(s, x, top, mark, st, 0, m.width-padX)
		}
		label := p.Label
		putString(s, m.width-padX-runewidth.StringWidth(label), top, label, styleDim, x+1, m.width)
	}

	focusPos := -1
	if focused {
		if ref, ok := m.focusedCard(); ok {
			focusPos = ref.position
		}
	}

	clipL, clipR := padX, m.width-padX
	cw := int(math.Round(eng.Geometry().CardWidth))
	for _, mc := range eng.CardsAt(r.host.Offset()) {
		x0 := int(math.Round(m.cardX(r, mc.Position)))
		if x0+cw <= clipL || x0 >= clipR {
			continue
		}
		st := styleCard
		switch {
		case mc.Position == focusPos:
			st = styleFocus
		case m.hover != nil && m.hover.rail == i && m.hover.position == mc.Position:
			st = styleHover
		}
		view := page.NewCardView(mc.Card, m.deps.Likes.Get(string(mc.Card.ID)))
		m.drawCard(s, x0, top+1, cw, view, st, clipL, clipR)
	}

	arrowY := top + 2
	if m.rowVisible(arrowY) {
		c := eng.Controls()
		prev, next := styleBase, styleBase
		if c.PrevDisabled {
			prev = styleDisable
		}
		if c.NextDisabled {
			next = styleDisable
		}
		putString(s, 0, arrowY, "‹", prev, 0, m.width)
		putString(s, m.width-1, arrowY, "›", next, 0, m.width)
	}
}

// drawCard 三行卡片：标题、角标与元信息、点赞
func (m *Model) drawCard(s tcell.Screen, x, y, w int, v page.CardView, st tcell.Style, clipL, clipR int) {
	inner := max(0, w-2)

	title := v.Title
	if v.Rank != "" {
		title = "#" + v.Rank + " " + title
	}
	meta := v.Meta
	if v.Badge != "" {
		meta = v.Badge + " " + meta
	}
	likeStyle := st
	if v.Liked && st != styleFocus {
		likeStyle = st.Foreground(colorAccent)
	}

	rows := []struct {
		text  string
		style tcell.Style
	}{
		{truncate(title, inner), st.Bold(true)},
		{truncate(meta, inner), st},
		{truncate(v.LikeLabel(), inner), likeStyle},
	}
	for i, row := range rows {
		if !m.rowVisible(y + i) {
			continue
		}
		fill(s, x, y+i, w, 1, st, clipL, clipR)
		putString(s, x+1, y+i, row.text, row.style, clipL, clipR)
	}
}

func (m *Model) alertsLabel() string {
	if m.unread > 0 {
		return fmt.Sprintf("n Alerts (%d)", m.unread)
	}
	return "n Alerts"
}

func (m *Model) drawHeader(s tcell.Screen) {
	st := styleBase
	if m.header().Solid {
		st = stylePanel
		fill(s, 0, 0, m.width, 1, st, 0, m.width)
	}
	profile, alerts := m.headerTargets()

	x := putString(s, padX, 0, logoText, styleLogo.Background(bg(st)), 0, m.width)
	for _, item := range page.NavItems {
		x += 2
		if x+runewidth.StringWidth(item) >= int(alerts.X)-1 {
			break
		}
		x = putString(s, x, 0, item, st, 0, m.width)
	}

	alertStyle := st
	if m.unread > 0 {
		alertStyle = st.Foreground(colorAccent)
	}
	putString(s, int(alerts.X), 0, m.alertsLabel(), alertStyle, x+1, m.width)
	putString(s, int(profile.X), 0, profileLabel, st, x+1, m.width)
}

// bg 样式的背景色
func bg(st tcell.Style) tcell.Color {
	_, b, _ := st.Decompose()
	return b
}

func (m *Model) drawMenus(s tcell.Screen) {
	profile, alerts := m.headerTargets()
	if m.profile.IsOpen() {
		drawBox(s, m.menuRect(profile, page.ProfileMenuItems), page.ProfileMenuItems)
	}
	if m.notifications.IsOpen() {
		drawBox(s, m.menuRect(alerts, m.notes), m.notes)
	}
}

func (m *Model) drawDetails(s tcell.Screen) {
	t := m.detailTarget
	if !m.details.IsOpen() || t == nil {
		return
	}
	v := page.NewCardView(t.card, m.deps.Likes.Get(string(t.card.ID)))
	lines := []string{v.Title, v.Meta}
	var extra []string
	if v.Badge != "" {
		extra = append(extra, v.Badge)
	}
	if v.Rank != "" {
		extra = append(extra, "Top "+v.Rank)
	}
	if v.Category != "" {
		extra = append(extra, v.Category)
	}
	lines = append(lines, strings.Join(extra, " · "), v.LikeLabel()+"   l like")
	drawBox(s, m.detailsRect(), lines)
}

// drawBox 带边框的弹层
func drawBox(s tcell.Screen, r popover.Rect, lines []string) {
	x, y, w, h := int(r.X), int(r.Y), int(r.W), int(r.H)
	if w < 2 || h < 2 {
		return
	}
	sw, _ := s.Size()
	fill(s, x, y, w, h, stylePanel, 0, sw)
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, stylePanel)
		s.SetContent(col, y+h-1, tcell.RuneHLine, nil, stylePanel)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, stylePanel)
		s.SetContent(x+w-1, row, tcell.RuneVLine, nil, stylePanel)
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, stylePanel)
	s.SetContent(x+w-1, y, tcell.RuneURCorner, nil, stylePanel)
	s.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, stylePanel)
	s.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, stylePanel)

	for i, line := range lines {
		if i >= h-2 {
			break
		}
		st := stylePanel
		if i == 0 {
			st = st.Bold(true)
		}
		putString(s, x+2, y+1+i, truncate(line, w-4), st, 0, sw)
	}
}

func (m *Model) drawStatus(s tcell.Screen) {
	y := m.height - 1
	if y < 0 {
		return
	}
	x := 0
	if m.status != "" {
		x = putString(s, x, y, truncate(m.status, m.width/3), styleBold, 0, m.width) + 2
	}
	putString(s, x, y, truncate(hints, m.width-x), styleDim, 0, m.width)
}
