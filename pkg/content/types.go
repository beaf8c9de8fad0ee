// Package content 提供首页内容的数据模型与获取
//
// 内容来自两个 JSON 文档：hero.json（单个主视觉对象）与
// contents.json（{sections: [...]}）。文档可以通过 HTTP 获取，
// 也可以从 fs.FS（内嵌默认数据或本地目录）读取。
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// 端点文件名
const (
	HeroEndpoint     = "hero.json"
	ContentsEndpoint = "contents.json"
)

// Text 兼容 JSON 字符串与数字的文本字段（id、rating 在不同数据源中类型不一）
type Text string

// UnmarshalJSON 接受字符串、数字或 null
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("content: expected string or number, got %s", data)
	}
	*t = Text(n.String())
	return nil
}

// String 实现 fmt.Stringer
func (t Text) String() string { return string(t) }

// SliderOptions 轨道的轮播配置
type SliderOptions struct {
	Visible int `json:"visible"`
	Step    int `json:"step"`
}

// Card 一张内容卡片的描述
type Card struct {
	ID       Text   `json:"id"`
	Title    string `json:"title"`
	Image    string `json:"image"`
	Category string `json:"category,omitempty"`
	IsNew    bool   `json:"isNew,omitempty"`
	Rating   Text   `json:"rating,omitempty"`
	Year     int    `json:"year,omitempty"`
	Rank     *int   `json:"rank,omitempty"`
}

// HasRank 是否为排行榜卡片
func (c Card) HasRank() bool {
	return c.Rank != nil
}

// RankLabel 排名文本，无排名时为空
func (c Card) RankLabel() string {
	if c.Rank == nil {
		return ""
	}
	return strconv.Itoa(*c.Rank)
}

// Section 一条内容轨道
type Section struct {
	ID            Text          `json:"id"`
	Title         string        `json:"title"`
	SliderOptions SliderOptions `json:"sliderOptions"`
	Contents      []Card        `json:"contents"`
}

// Hero 首页主视觉
type Hero struct {
	ID          Text     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Logo        string   `json:"logo,omitempty"`
	Rating      Text     `json:"rating,omitempty"`
	Year        int      `json:"year,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

// contentsDocument contents.json 的顶层结构
type contentsDocument struct {
	Sections []Section `json:"sections"`
}

// Home 首页完整内容
type Home struct {
	Hero     *Hero
	Sections []Section
}

// decodeHero 解析 hero.json
func decodeHero(data []byte) (*Hero, error) {
	var h Hero
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// decodeSections 解析 contents.json
func decodeSections(data []byte) ([]Section, error) {
	var doc contentsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Sections == nil {
		return nil, fmt.Errorf("missing %q array", "sections")
	}
	return doc.Sections, nil
}
