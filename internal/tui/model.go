// Package tui 终端前端：同一套轨道引擎与页面组装，渲染到 tcell 屏幕
//
// 所有引擎操作都在事件循环 goroutine 上执行；异步加载的结果通过
// tcell.EventInterrupt 投递回事件循环。
package tui

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/clock"
	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/likes"
	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
)

// 布局（单元格）
const (
	padX       = 2
	headerRows = 2 // 页头 + 空行
	heroRows   = 5
	railRows   = 5 // 标题、三行卡片、空行
	cardRows   = 3
	statusRows = 1
	cardGap    = 1
	// rowPixels 页头样式阈值按像素配置，每行折算的像素
	rowPixels = 16
)

// cellBreakpoints 按终端列数选择 visible/step
var cellBreakpoints = page.Breakpoints{
	{MinWidth: 0, Visible: 2, Step: 2},
	{MinWidth: 60, Visible: 3, Step: 3},
	{MinWidth: 96, Visible: 4, Step: 4},
	{MinWidth: 130, Visible: 5, Step: 5},
	{MinWidth: 170, Visible: 6, Step: 3},
}

type phase int

const (
	phaseLoading phase = iota
	phaseHome
	phaseError
)

// loaded 异步加载结果，gen 用于丢弃过期的结果
type loaded struct {
	gen  int
	home *content.Home
	err  error
}

// Deps 终端前端的依赖
type Deps struct {
	Ctx     context.Context
	Config  *config.Config
	Log     *zap.Logger
	Content *content.Cached
	Likes   *likes.Store
	// Post 把事件投递回事件循环（tcell.Screen.PostEvent）
	Post func(tcell.Event) error
}

// rail 一条轨道的终端视图状态
type rail struct {
	*page.Rail
	host   *Host
	ranked bool
}

// cardRef 指针下的卡片
type cardRef struct {
	rail     int
	position int
	card     content.Card
}

// Model 终端首页的全部状态
//
// Thread Safety Note:
// Model 不是线程安全的，除 Load 启动的加载 goroutine 外，只能在事件循环上使用。
type Model struct {
	deps     Deps
	log      *zap.Logger
	sched    *clock.Scheduler
	viewport *page.Viewport
	width    int
	height   int

	phase  phase
	gen    int
	cancel context.CancelFunc
	frames int
	banner page.BannerModel

	home      *content.Home
	page      *page.Page
	rails     []*rail
	focusRail int
	focusCard int
	scroll    int

	profile       *popover.Controller
	notifications *popover.Controller
	details       *popover.Controller
	notes         []string
	unread        int
	hover         *cardRef
	detailTarget  *cardRef

	buttons tcell.ButtonMask
	status  string
	quit    bool
}

// NewModel 创建模型，调用 Load 开始加载
func NewModel(deps Deps, width, height int) *Model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	if deps.Likes == nil {
		deps.Likes = likes.NewStore(nil)
	}
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	return &Model{
		deps:     deps,
		log:      log.Named("tui"),
		sched:    clock.NewScheduler(),
		viewport: page.NewViewport(float64(width), float64(height)),
		width:    width,
		height:   height,
	}
}

// Load 在后台加载首页内容，结果以 EventInterrupt 投递
func (m *Model) Load() {
	m.gen++
	gen := m.gen
	if m.cancel != nil {
		m.cancel()
	}
	m.phase = phaseLoading
	m.frames = 0

	ctx, cancel := context.WithCancel(m.deps.Ctx)
	if timeout := m.deps.Config.Content.Timeout; timeout > 0 {
		ctx, cancel = context.WithTimeout(m.deps.Ctx, timeout)
	}
	m.cancel = cancel

	src := m.deps.Content
	post := m.deps.Post
	go func() {
		home, err := content.LoadHome(ctx, src)
		if post != nil {
			_ = post(tcell.NewEventInterrupt(loaded{gen: gen, home: home, err: err}))
		}
	}()
}

// Reload 清空缓存与点赞后重新加载
func (m *Model) Reload() {
	m.log.Info("Reloading")
	m.teardown()
	m.deps.Content.Invalidate()
	m.deps.Likes.Reset()
	m.status = ""
	m.Load()
}

// Close 释放轨道并取消进行中的加载
func (m *Model) Close() {
	m.teardown()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m *Model) apply(l loaded) {
	if l.gen != m.gen {
		m.log.Debug("Stale load result dropped", zap.Int("gen", l.gen))
		return
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if l.err != nil {
		m.log.Error("Home page failed to load", zap.Error(l.err))
		m.banner = page.Banner(l.err)
		m.phase = phaseError
		return
	}
	m.assemble(l.home)
	m.phase = phaseHome
}

// assemble 为每个分区组装终端轨道
func (m *Model) assemble(home *content.Home) {
	m.home = home
	cfg := m.deps.Config

	cc := cfg.CarouselEngineConfig()
	cc.Gap = cardGap

	hosts := make(map[string]*Host)
	factory := func(id string, _ content.Section) (carousel.Host, error) {
		h := NewHost(id, m.viewport, m.sched, m.railWidth, m.log)
		hosts[id] = h
		return h, nil
	}
	m.page = page.Assemble(home, factory, page.AssembleConfig{
		Carousel:      cc,
		Breakpoints:   cellBreakpoints,
		ViewportWidth: m.railWidth(),
		Logger:        m.log,
	})
	if err := m.page.Err(); err != nil {
		m.log.Warn("Some rails were skipped", zap.Error(err))
	}

	m.rails = m.rails[:0]
	for _, r := range m.page.Rails {
		rv := &rail{Rail: r, host: hosts[r.ID]}
		for _, c := range r.Section.Contents {
			if c.HasRank() {
				rv.ranked = true
				break
			}
		}
		m.rails = append(m.rails, rv)
	}
	m.focusRail, m.focusCard, m.scroll = 0, 0, 0

	opts := append(cfg.PopoverOptions(), popover.WithLogger(m.log))
	m.profile = popover.NewController("profile", m.sched, opts...)
	m.notifications = popover.NewController("notifications", m.sched, opts...)
	m.details = popover.NewController("details", m.sched, append(opts, popover.OnChange(func(open bool) {
		if !open {
			m.detailTarget = nil
		}
	}))...)
	m.notes, m.unread = page.Notifications(home)
}

func (m *Model) teardown() {
	if m.page != nil {
		m.page.Destroy()
		m.page = nil
	}
	m.rails = nil
	m.hover, m.detailTarget = nil, nil
	for _, c := range []*popover.Controller{m.profile, m.notifications, m.details} {
		if c != nil {
			c.Close()
		}
	}
}

// railWidth 轨道视口宽度（单元格）
func (m *Model) railWidth() float64 {
	return float64(max(0, m.width-2*padX))
}

// Resize 终端尺寸变化
func (m *Model) Resize(width, height int) {
	m.width, m.height = width, height
	m.viewport.SetSize(float64(width), float64(height))
	m.scrollTo(m.scroll)
}

// Tick 推进一帧
func (m *Model) Tick(dt time.Duration) {
	m.frames++
	for _, r := range m.rails {
		r.host.Frame(dt)
	}
	m.sched.Advance(dt)
}

// Shown 一帧已输出到终端
func (m *Model) Shown() {
	for _, r := range m.rails {
		r.host.Shown()
	}
}

// Quit 是否已请求退出
func (m *Model) Quit() bool { return m.quit }

// visibleRows 页头与状态栏之间的行数
func (m *Model) visibleRows() int {
	return max(0, m.height-headerRows-statusRows)
}

// maxScroll 最大滚动行数
func (m *Model) maxScroll() int {
	return max(0, heroRows+len(m.rails)*railRows-m.visibleRows())
}

func (m *Model) scrollTo(row int) {
	m.scroll = max(0, min(row, m.maxScroll()))
}

// scrollToRail 让轨道完整可见
func (m *Model) scrollToRail(i int) {
	top := heroRows + i*railRows
	bottom := top + railRows
	switch {
	case top < m.scroll:
		m.scrollTo(top)
	case bottom > m.scroll+m.visibleRows():
		m.scrollTo(bottom - m.visibleRows())
	}
}

// railTop 轨道标题所在的屏幕行
func (m *Model) railTop(i int) int {
	return headerRows + heroRows + i*railRows - m.scroll
}

// cardX 卡片左边界所在的列（小数）
func (m *Model) cardX(r *rail, position int) float64 {
	return padX + float64(position)*r.Engine.Geometry().ItemWidth + r.host.Offset()
}

// header 当前页头样式
func (m *Model) header() page.HeaderState {
	return page.HeaderStyle(float64(m.scroll*rowPixels), m.deps.Config.Header.Threshold)
}

func (m *Model) focused() *rail {
	if m.focusRail < 0 || m.focusRail >= len(m.rails) {
		return nil
	}
	return m.rails[m.focusRail]
}

func (m *Model) moveFocus(delta int) {
	if len(m.rails) == 0 {
		return
	}
	m.focusRail = max(0, min(m.focusRail+delta, len(m.rails)-1))
	m.focusCard = 0
	m.scrollToRail(m.focusRail)
}

func (m *Model) next() {
	if r := m.focused(); r != nil && r.Engine.Next() {
		m.focusCard = 0
		m.details.Close()
	}
}

func (m *Model) previous() {
	if r := m.focused(); r != nil && r.Engine.Previous() {
		m.focusCard = 0
		m.details.Close()
	}
}

// goToPage 跳转到第 n 页（从 0 开始）
func (m *Model) goToPage(n int) {
	if r := m.focused(); r != nil && r.Engine.GoToPage(n) {
		m.focusCard = 0
		m.details.Close()
	}
}

// cycleFocusCard 在可见窗口内循环移动卡片焦点
func (m *Model) cycleFocusCard(delta int) {
	r := m.focused()
	if r == nil {
		return
	}
	n := len(r.Engine.Window())
	if n == 0 {
		return
	}
	m.focusCard = ((m.focusCard+delta)%n + n) % n
}

// focusedCard 焦点轨道中的焦点卡片
func (m *Model) focusedCard() (cardRef, bool) {
	r := m.focused()
	if r == nil {
		return cardRef{}, false
	}
	win := r.Engine.Window()
	if m.focusCard >= len(win) {
		return cardRef{}, false
	}
	mc := win[m.focusCard]
	return cardRef{rail: m.focusRail, position: mc.Position, card: mc.Card}, true
}

func (m *Model) toggleLike(c content.Card) {
	liked, count := m.deps.Likes.Toggle(string(c.ID))
	m.log.Debug("Like toggled",
		zap.String("card", string(c.ID)),
		zap.Bool("liked", liked),
		zap.Int("count", count))
	if liked {
		m.status = "Liked " + c.Title
	} else {
		m.status = "Unliked " + c.Title
	}
}

// toggleMenu 键盘激活页头菜单，同时关闭另一个
func (m *Model) toggleMenu(c *popover.Controller) {
	for _, other := range []*popover.Controller{m.profile, m.notifications} {
		if other != c {
			other.Close()
		}
	}
	c.Toggle()
}

func (m *Model) closePopovers() {
	m.profile.Close()
	m.notifications.Close()
	m.details.Close()
}

// toggleDetails 键盘激活焦点卡片的详情弹层
func (m *Model) toggleDetails() {
	ref, ok := m.focusedCard()
	if !ok {
		return
	}
	if m.details.IsOpen() && m.detailTarget != nil && m.detailTarget.position == ref.position && m.detailTarget.rail == ref.rail {
		m.details.Close()
		return
	}
	m.details.Close()
	m.detailTarget = &ref
	m.details.Toggle()
}
