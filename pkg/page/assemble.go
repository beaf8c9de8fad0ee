package page

import (
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/content"
)

// MissingContainerError 轨道所需的布局锚点不存在
//
// 只对该轨道致命：记录日志并跳过，不影响其他轨道。
type MissingContainerError struct {
	Rail string
}

func (e *MissingContainerError) Error() string {
	return fmt.Sprintf("rail %q: container not found", e.Rail)
}

// HostFactory 为一条轨道创建宿主（渲染表面）
//
// 返回 nil 宿主等价于返回 *MissingContainerError。
type HostFactory func(id string, section content.Section) (carousel.Host, error)

// AssembleConfig 页面组装参数
type AssembleConfig struct {
	// Carousel 所有轨道共享的引擎配置（Visible/Step/Label 按分区覆盖）
	Carousel carousel.Config
	// Breakpoints 分区没有 sliderOptions 时按视口宽度选择 visible/step
	Breakpoints Breakpoints
	// ViewportWidth 组装时的视口宽度
	ViewportWidth float64
	// Logger 日志记录器，nil 时不输出
	Logger *zap.Logger
	// OnUpdate 任一轨道状态变化时调用（参数为轨道标识）
	OnUpdate func(id string)
}

// Rail 一条已组装的轨道
type Rail struct {
	ID      string
	Section content.Section
	Engine  *Engine
	Host    carousel.Host
}

// Page 组装好的首页
type Page struct {
	Hero     *content.Hero
	Rails    []*Rail
	Registry *Registry
	// Skipped 被跳过的轨道的错误
	Skipped []error
}

// Err 所有被跳过轨道的合并错误，没有时为 nil
func (p *Page) Err() error {
	return multierr.Combine(p.Skipped...)
}

// Rail 按标识查找轨道
func (p *Page) Rail(id string) (*Rail, bool) {
	for _, r := range p.Rails {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Destroy 销毁所有轨道
func (p *Page) Destroy() {
	p.Registry.DestroyAll()
	p.Rails = nil
}

// SliderConfig 计算分区的 visible/step
//
// 分区自带的正数 sliderOptions 优先，否则使用断点表。
func SliderConfig(section content.Section, bps Breakpoints, width float64) (visible, step int) {
	visible, step = bps.For(width)
	if section.SliderOptions.Visible > 0 {
		visible = section.SliderOptions.Visible
	}
	if section.SliderOptions.Step > 0 {
		step = section.SliderOptions.Step
	}
	return visible, step
}

// Assemble 为每个分区组装一条轨道
//
// 单条轨道的失败（空卡片、缺少容器、非法配置）被记录并跳过，
// 不会中断其他轨道，也不会让整个页面失败。
func Assemble(home *content.Home, factory HostFactory, cfg AssembleConfig) *Page {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	p := &Page{Registry: NewRegistry()}
	if home == nil {
		return p
	}
	p.Hero = home.Hero

	for i, section := range home.Sections {
		id := RailID(section, i)
		if p.Registry.Has(id) {
			id = id + "-" + strconv.Itoa(i)
		}

		rail, err := assembleRail(id, section, factory, cfg, log)
		if err != nil {
			var empty *carousel.EmptyInputError
			var missing *MissingContainerError
			switch {
			case errors.As(err, &empty), errors.As(err, &missing):
				log.Warn("Rail skipped", zap.String("rail", id), zap.Error(err))
			default:
				log.Error("Rail failed", zap.String("rail", id), zap.Error(err))
			}
			p.Skipped = append(p.Skipped, err)
			continue
		}

		if err := p.Registry.Register(id, rail.Engine); err != nil {
			rail.Engine.Destroy()
			p.Skipped = append(p.Skipped, err)
			continue
		}
		p.Rails = append(p.Rails, rail)
	}

	log.Info("Page assembled",
		zap.Int("rails", len(p.Rails)),
		zap.Int("skipped", len(p.Skipped)))
	return p
}

func assembleRail(id string, section content.Section, factory HostFactory, cfg AssembleConfig, log *zap.Logger) (*Rail, error) {
	host, err := factory(id, section)
	if err != nil {
		return nil, fmt.Errorf("rail %q: %w", id, err)
	}
	if host == nil {
		return nil, &MissingContainerError{Rail: id}
	}

	cc := cfg.Carousel
	cc.Visible, cc.Step = SliderConfig(section, cfg.Breakpoints, cfg.ViewportWidth)
	cc.Label = section.Title

	opts := []carousel.Option{carousel.WithLogger(log.Named("carousel").With(zap.String("rail", id)))}
	if cfg.OnUpdate != nil {
		opts = append(opts, carousel.WithUpdateHook(func() { cfg.OnUpdate(id) }))
	}

	eng, err := carousel.New(host, section.Contents, cc, opts...)
	if err != nil {
		if d, ok := host.(carousel.Detacher); ok {
			d.Detach()
		}
		return nil, fmt.Errorf("rail %q: %w", id, err)
	}
	return &Rail{ID: id, Section: section, Engine: eng, Host: host}, nil
}
