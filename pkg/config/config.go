// Package config 加载与校验应用配置
//
// 内置的默认配置（config.yaml）先经过 gencfg 处理，再把用户配置文件叠加在上面，
// 因此用户文件只需要包含要覆盖的键。
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/rupor-github/gencfg"
	"gopkg.in/yaml.v3"

	"github.com/decker502/flixrail/pkg/carousel"
	"github.com/decker502/flixrail/pkg/page"
	"github.com/decker502/flixrail/pkg/popover"
)

// AppName 应用名称（日志、存档目录）
const AppName = "flixrail"

//go:embed config.yaml
var ConfigTmpl []byte

// ContentConfig 内容源
type ContentConfig struct {
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// CarouselConfig 轨道引擎共享配置
type CarouselConfig struct {
	Visible        int           `yaml:"visible" validate:"gte=0"`
	Step           int           `yaml:"step" validate:"gte=0"`
	Infinite       bool          `yaml:"infinite"`
	Duration       time.Duration `yaml:"duration" validate:"gte=0"`
	Easing         string        `yaml:"easing" validate:"omitempty,oneof=ease linear ease-in ease-out ease-in-out"`
	Gap            float64       `yaml:"gap" validate:"gte=0"`
	ResizeDebounce time.Duration `yaml:"resize_debounce" validate:"gte=0"`
	GrowthBatch    int           `yaml:"growth_batch" validate:"gte=0"`
	LowWater       int           `yaml:"low_water" validate:"gte=0"`
}

// PopoverConfig 悬浮弹层
type PopoverConfig struct {
	OpenDelay  time.Duration `yaml:"open_delay" validate:"gte=0"`
	CloseDelay time.Duration `yaml:"close_delay" validate:"gte=0"`
	Margin     float64       `yaml:"margin" validate:"gte=0"`
}

// HeaderConfig 页头
type HeaderConfig struct {
	Threshold float64 `yaml:"threshold" validate:"gt=0"`
}

// WindowConfig 桌面窗口
type WindowConfig struct {
	Title            string `yaml:"title" validate:"required"`
	Width            int    `yaml:"width" validate:"min=320"`
	Height           int    `yaml:"height" validate:"min=240"`
	Fullscreen       bool   `yaml:"fullscreen"`
	RememberSettings bool   `yaml:"remember_settings"`
}

// Config 应用配置
type Config struct {
	Content     ContentConfig    `yaml:"content"`
	Carousel    CarouselConfig   `yaml:"carousel"`
	Breakpoints page.Breakpoints `yaml:"breakpoints" validate:"dive"`
	Popover     PopoverConfig    `yaml:"popover"`
	Header      HeaderConfig     `yaml:"header"`
	Window      WindowConfig     `yaml:"window"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// CarouselEngineConfig 转换为引擎配置（Visible/Step 为 0 时由页面组装决定）
func (c *Config) CarouselEngineConfig() carousel.Config {
	return carousel.Config{
		Visible:        c.Carousel.Visible,
		Step:           c.Carousel.Step,
		Infinite:       c.Carousel.Infinite,
		Duration:       c.Carousel.Duration,
		Easing:         c.Carousel.Easing,
		Gap:            c.Carousel.Gap,
		ResizeDebounce: c.Carousel.ResizeDebounce,
		GrowthBatch:    c.Carousel.GrowthBatch,
		LowWater:       c.Carousel.LowWater,
	}
}

// PopoverOptions 转换为弹层控制器选项
func (c *Config) PopoverOptions() []popover.Option {
	return []popover.Option{popover.WithDelays(c.Popover.OpenDelay, c.Popover.CloseDelay)}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// 只接受已定义的字段，不能直接用 yaml.Unmarshal
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if err := cfg.Breakpoints.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration 读取配置文件并叠加到默认配置上，然后校验
//
// path 为空时只使用默认配置。
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// 列表（breakpoints）整体替换默认值
	cfg, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare 生成默认配置文件内容
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

// Dump 输出当前生效的配置
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
