package scenes

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/clock"
	"github.com/decker502/flixrail/pkg/config"
	"github.com/decker502/flixrail/pkg/content"
	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
	"github.com/decker502/flixrail/pkg/ui"
	"github.com/decker502/flixrail/pkg/utils"
)

// railView 一条轨道的桌面端视图状态
type railView struct {
	rail   *page.Rail
	host   *RailHost
	ranked bool

	// 内容坐标（未减去 scrollY）
	top         float64
	posterH     float64
	hoverPrev   bool
	hoverNext   bool
	hoverMarker int
}

// cardsTop 卡片行顶部（内容坐标）
func (rv *railView) cardsTop() float64 {
	return rv.top + config.RailTitleHeight
}

// height 轨道总高度
func (rv *railView) height() float64 {
	return config.RailTitleHeight + rv.posterH + config.CardInfoHeight
}

// headerMenu 页头上的一个弹出菜单
type headerMenu struct {
	name      string
	items     []string
	ctrl      *popover.Controller
	anchor    popover.Rect
	hovered   bool
	hoverItem int
	badge     int // 未读数，0 表示不显示角标
}

// cardRef 轨道中的一张卡片
type cardRef struct {
	rail     int
	position int
	card     content.Card
	rect     popover.Rect // 海报区域（屏幕坐标）
}

// HomeScene 首页：页头、主视觉和内容轨道
//
// 每条轨道拥有独立的引擎和 RailHost，共享同一个 page.Viewport 与调度器。
// 所有引擎操作、过渡推进和延时回调都在 Update 中执行。
type HomeScene struct {
	env *Env
	log *zap.Logger

	sched    *clock.Scheduler
	viewport *page.Viewport
	home     *content.Home
	page     *page.Page
	rails    []*railView
	hosts    map[string]*RailHost

	width, height float64
	scrollY       float64
	maxScroll     float64
	header        page.HeaderState

	focusRail int
	focusCard int

	profile       *headerMenu
	notifications *headerMenu
	cardPop       *popover.Controller
	popTarget     *cardRef
	hoverCard     *cardRef
	hoverPopLike  bool

	swipe  *utils.SwipeTracker
	wheelX float64

	fonts homeFonts
}

// homeFonts 首页使用的字体
type homeFonts struct {
	logo, nav      *text.GoTextFace
	heroTitle      *text.GoTextFace
	heroBody       *text.GoTextFace
	railTitle      *text.GoTextFace
	card, cardBold *text.GoTextFace
	rank           *text.GoTextFace
}

// NewHomeScene 创建首页并组装所有轨道
func NewHomeScene(env *Env, home *content.Home) *HomeScene {
	s := &HomeScene{
		env:   env,
		log:   env.logger("scene.home"),
		sched: clock.NewScheduler(),
		home:  home,
		hosts: make(map[string]*RailHost),
		swipe: utils.NewSwipeTracker(),
	}

	s.width, s.height = float64(env.Config.Window.Width), float64(env.Config.Window.Height)
	if w, h := env.Scenes.Size(); w > 0 && h > 0 {
		s.width, s.height = float64(w), float64(h)
	}
	s.viewport = page.NewViewport(s.width, s.height)

	s.loadFonts()
	s.initMenus()
	s.assemble()
	s.layout()
	return s
}

// loadFonts loads the font faces used by the home scene.
func (s *HomeScene) loadFonts() {
	rm := s.env.Resources
	k := s.env.scale()
	s.fonts = homeFonts{
		logo:      rm.Font(ui.FontBold, config.HeaderLogoFontSize*k),
		nav:       rm.Font(ui.FontRegular, config.HeaderNavFontSize*k),
		heroTitle: rm.Font(ui.FontBold, config.HeroTitleFontSize*k),
		heroBody:  rm.Font(ui.FontRegular, config.HeroBodyFontSize*k),
		railTitle: rm.Font(ui.FontBold, config.RailTitleFontSize*k),
		card:      rm.Font(ui.FontRegular, config.CardFontSize*k),
		cardBold:  rm.Font(ui.FontBold, config.CardFontSize*k),
		rank:      rm.Font(ui.FontBold, config.RankFontSize*k),
	}
}

// initMenus 创建页头菜单与卡片弹层的控制器
func (s *HomeScene) initMenus() {
	opts := append(s.env.Config.PopoverOptions(), popover.WithLogger(s.log))

	s.profile = &headerMenu{name: "profile", items: page.ProfileMenuItems, hoverItem: -1}
	s.profile.ctrl = popover.NewController("profile", s.sched, opts...)
	alerts, unread := page.Notifications(s.home)
	s.notifications = &headerMenu{name: "notifications", items: alerts, hoverItem: -1, badge: unread}
	s.notifications.ctrl = popover.NewController("notifications", s.sched, opts...)
	s.cardPop = popover.NewController("card", s.sched, append(opts, popover.OnChange(func(open bool) {
		if !open {
			s.popTarget = nil
		}
	}))...)
}

// assemble 为每个分区组装轨道
func (s *HomeScene) assemble() {
	cc := s.env.Config.CarouselEngineConfig()
	reduced := s.env.reducedMotion()

	factory := func(id string, _ content.Section) (carousel.Host, error) {
		host := NewRailHost(id, s.viewport, s.sched, s.railWidth, s.log)
		host.SetReducedMotion(reduced)
		s.hosts[id] = host
		return host, nil
	}

	s.page = page.Assemble(s.home, factory, page.AssembleConfig{
		Carousel:      cc,
		Breakpoints:   s.env.Config.Breakpoints,
		ViewportWidth: s.railWidth(),
		Logger:        s.log,
	})
	if err := s.page.Err(); err != nil {
		s.log.Warn("Some rails were skipped", zap.Error(err))
	}

	for _, r := range s.page.Rails {
		rv := &railView{rail: r, host: s.hosts[r.ID], hoverMarker: -1}
		for _, c := range r.Section.Contents {
			if c.HasRank() {
				rv.ranked = true
				break
			}
		}
		s.rails = append(s.rails, rv)
	}
}

// railWidth 轨道视口宽度
func (s *HomeScene) railWidth() float64 {
	w, _ := s.viewport.Size()
	return config.RailViewportWidth(w)
}

// heroHeight 主视觉高度
func (s *HomeScene) heroHeight() float64 {
	return config.HeroHeight(s.width)
}

// layout 重新计算每条轨道的纵向位置与可滚动范围
func (s *HomeScene) layout() {
	y := s.heroHeight() + config.RailGapY
	for _, rv := range s.rails {
		cardW := rv.rail.Engine.Geometry().CardWidth
		rv.top = y
		rv.posterH = config.CardHeight(cardW, rv.ranked) - config.CardInfoHeight
		y += rv.height() + config.RailGapY
	}
	contentH := y + config.PageBottomPadding
	s.maxScroll = max(0, contentH-s.height)
	s.scrollY = max(0, min(s.scrollY, s.maxScroll))
	s.header = page.HeaderStyle(s.scrollY, s.env.Config.Header.Threshold)
}

// Page 组装好的页面
func (s *HomeScene) Page() *page.Page {
	return s.page
}

// ScrollY 当前纵向滚动量
func (s *HomeScene) ScrollY() float64 {
	return s.scrollY
}

// FocusRail 键盘焦点所在轨道
func (s *HomeScene) FocusRail() int {
	return s.focusRail
}

// Update 处理输入并推进所有轨道
func (s *HomeScene) Update(deltaTime float64) {
	s.updateKeyboard()
	s.updatePointer()
	s.advance(time.Duration(deltaTime * float64(time.Second)))
}

// advance 推进过渡动画与延时任务
func (s *HomeScene) advance(dt time.Duration) {
	for _, rv := range s.rails {
		rv.host.Update(dt)
	}
	s.sched.Advance(dt)
	s.layout()
}

// Resize 实现 ui.Resizable：广播给所有轨道（各自去抖后重新测量）
func (s *HomeScene) Resize(width, height int) {
	s.width, s.height = float64(width), float64(height)
	if s.viewport.SetSize(s.width, s.height) {
		s.log.Debug("Viewport resized", zap.Int("width", width), zap.Int("height", height))
	}
	s.layout()
}

// Leave 实现 ui.Leaver：销毁所有轨道
func (s *HomeScene) Leave() {
	s.page.Destroy()
	s.rails = nil
	s.log.Debug("Home scene left")
}

// ============================================================================
// 动作：键盘、鼠标、触摸最终都汇聚到这里
// ============================================================================

// focused 焦点轨道，没有轨道时为 nil
func (s *HomeScene) focused() *railView {
	if s.focusRail < 0 || s.focusRail >= len(s.rails) {
		return nil
	}
	return s.rails[s.focusRail]
}

// moveFocus 上下切换焦点轨道，并把焦点轨道滚动到可见范围
func (s *HomeScene) moveFocus(delta int) {
	if len(s.rails) == 0 {
		return
	}
	s.focusRail = max(0, min(s.focusRail+delta, len(s.rails)-1))
	s.focusCard = 0
	s.scrollToRail(s.focusRail)
}

// scrollToRail 让轨道完整出现在页头下方
func (s *HomeScene) scrollToRail(i int) {
	rv := s.rails[i]
	top := rv.top - config.HeaderHeight - config.RailGapY
	bottom := rv.top + rv.height() + config.RailGapY - s.height
	switch {
	case s.scrollY > top:
		s.scrollTo(top)
	case s.scrollY < bottom:
		s.scrollTo(bottom)
	}
}

// scrollBy 纵向滚动
func (s *HomeScene) scrollBy(dy float64) {
	s.scrollTo(s.scrollY + dy)
}

// scrollTo 滚动到指定位置（限制在可滚动范围内）
func (s *HomeScene) scrollTo(y float64) {
	s.scrollY = max(0, min(y, s.maxScroll))
	s.header = page.HeaderStyle(s.scrollY, s.env.Config.Header.Threshold)
}

// next 轨道向后翻页
func (s *HomeScene) next(rv *railView) {
	if rv != nil && rv.rail.Engine.Next() {
		s.focusCard = 0
		s.cardPop.Close()
	}
}

// previous 轨道向前翻页
func (s *HomeScene) previous(rv *railView) {
	if rv != nil && rv.rail.Engine.Previous() {
		s.focusCard = 0
		s.cardPop.Close()
	}
}

// goToPage 轨道跳转到第 page 页（从 0 开始）
func (s *HomeScene) goToPage(rv *railView, page int) {
	if rv != nil && rv.rail.Engine.GoToPage(page) {
		s.focusCard = 0
		s.cardPop.Close()
	}
}

// cycleFocusCard 在焦点轨道的可见卡片间切换
func (s *HomeScene) cycleFocusCard(delta int) {
	rv := s.focused()
	if rv == nil {
		return
	}
	n := len(rv.rail.Engine.Window())
	if n == 0 {
		return
	}
	s.focusCard = ((s.focusCard+delta)%n + n) % n
}

// focusedCard 焦点轨道中的焦点卡片
func (s *HomeScene) focusedCard() (content.Card, bool) {
	rv := s.focused()
	if rv == nil {
		return content.Card{}, false
	}
	win := rv.rail.Engine.Window()
	if s.focusCard >= len(win) {
		return content.Card{}, false
	}
	return win[s.focusCard].Card, true
}

// toggleLike 切换卡片的点赞状态
func (s *HomeScene) toggleLike(c content.Card) {
	liked, count := s.env.Likes.Toggle(string(c.ID))
	s.log.Debug("Like toggled",
		zap.String("card", string(c.ID)),
		zap.Bool("liked", liked),
		zap.Int("count", count))
}

// toggleMenu 键盘激活页头菜单，同时关闭另一个
func (s *HomeScene) toggleMenu(m *headerMenu) {
	for _, other := range []*headerMenu{s.profile, s.notifications} {
		if other != m {
			other.ctrl.Close()
		}
	}
	m.ctrl.Toggle()
}

// closePopovers 关闭所有弹层
func (s *HomeScene) closePopovers() {
	s.profile.ctrl.Close()
	s.notifications.ctrl.Close()
	s.cardPop.Close()
}

// toggleCardPopover 键盘激活焦点卡片的详情弹层
func (s *HomeScene) toggleCardPopover() {
	rv := s.focused()
	c, ok := s.focusedCard()
	if !ok {
		return
	}
	if s.cardPop.IsOpen() {
		s.cardPop.Close()
		return
	}
	win := rv.rail.Engine.Window()
	s.popTarget = &cardRef{
		rail:     s.focusRail,
		position: win[s.focusCard].Position,
		card:     c,
		rect:     s.cardRect(rv, win[s.focusCard].Position),
	}
	s.cardPop.Toggle()
}

// toggleReducedMotion 切换减少动态效果并持久化
func (s *HomeScene) toggleReducedMotion() {
	if s.env.Settings == nil {
		return
	}
	enabled := !s.env.Settings.GetSettings().ReducedMotion
	s.env.Settings.SetReducedMotion(enabled)
	if err := s.env.Settings.Save(); err != nil {
		s.log.Warn("Failed to save settings", zap.Error(err))
	}
	for _, rv := range s.rails {
		rv.host.SetReducedMotion(enabled)
	}
	s.log.Info("Reduced motion changed", zap.Bool("enabled", enabled))
}

// railStatus 调试信息
func (s *HomeScene) railStatus() string {
	out := ""
	for i, rv := range s.rails {
		mark := " "
		if i == s.focusRail {
			mark = ">"
		}
		out += fmt.Sprintf("%s%s\n", mark, rv.rail.Engine.String())
	}
	return out
}
